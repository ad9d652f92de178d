package bilicopy

import "time"

// Reply count API response.

type replyCountResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Count int `json:"count"`
	} `json:"data"`
}

// SSR data structs for window.__INITIAL_STATE__ (match Bilibili JSON exactly).

type initialState struct {
	BVID      string       `json:"bvid"`
	VideoData rawVideoData `json:"videoData"`
	UpData    rawUpData    `json:"upData"`
}

type rawVideoData struct {
	BVID    string   `json:"bvid"`
	AID     int64    `json:"aid"`
	Title   string   `json:"title"`
	PubDate int64    `json:"pubdate"`
	Owner   rawOwner `json:"owner"`
	Stat    rawStat  `json:"stat"`
}

type rawOwner struct {
	Mid  int64  `json:"mid"`
	Name string `json:"name"`
	Face string `json:"face"`
}

type rawStat struct {
	View     int `json:"view"`
	Danmaku  int `json:"danmaku"`
	Reply    int `json:"reply"`
	Favorite int `json:"favorite"`
	Coin     int `json:"coin"`
	Share    int `json:"share"`
	Like     int `json:"like"`
}

type rawUpData struct {
	Name string `json:"name"`
	Fans int    `json:"fans"`
}

// parseVideo converts SSR state to the public Video type.
func parseVideo(raw initialState) Video {
	vd := raw.VideoData
	return Video{
		ID:        vd.BVID,
		AID:       vd.AID,
		Title:     vd.Title,
		Author:    vd.Owner.Name,
		AuthorID:  vd.Owner.Mid,
		Followers: raw.UpData.Fans,
		Published: time.Unix(vd.PubDate, 0),
		Views:     vd.Stat.View,
		Likes:     vd.Stat.Like,
		Coins:     vd.Stat.Coin,
		Favorites: vd.Stat.Favorite,
		Shares:    vd.Stat.Share,
		Comments:  vd.Stat.Reply,
		Danmaku:   vd.Stat.Danmaku,
	}
}
