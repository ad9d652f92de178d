package bilicopy

import "time"

// Video is a Bilibili video with its engagement metrics, as embedded in the
// server-rendered page.
type Video struct {
	ID        string
	AID       int64
	Title     string
	Author    string
	AuthorID  int64
	Followers int
	Published time.Time
	Views     int
	Likes     int
	Coins     int
	Favorites int
	Shares    int
	Comments  int
	Danmaku   int
}
