package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/RavensCloud/bilicopy"
)

func main() {
	video := flag.String("url", "", "Video page URL or BV id")
	field := flag.String("field", "", "Field to copy: nickname, follow, play, like, coin, favorite, share, comment, date, url")
	list := flag.Bool("list", false, "Print every field instead of copying one")
	info := flag.Bool("info", false, "Print full video stats from the page's embedded state")
	overlay := flag.Bool("overlay", false, "Open the page in a browser with copy buttons")
	useBrowser := flag.Bool("browser", false, "Render the page in a headless browser before extracting")
	cookies := flag.String("cookies", "", "Path to cookies JSON file")
	proxyURL := flag.String("proxy", "", "Proxy URL (http/https/socks5)")
	login := flag.Bool("login", false, "Sign in through the browser, then save cookies")
	saveCookies := flag.String("save-cookies", "cookies.json", "Path to save cookies after login")
	flag.Parse()

	if *video == "" && !*login {
		fmt.Fprintln(os.Stderr, "usage: bilicopy --url <video> [--field <key> | --list | --info | --overlay] | --login")
		os.Exit(1)
	}

	cfg, err := bilicopy.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *proxyURL != "" {
		cfg.Proxy = *proxyURL
	}
	if *cookies != "" {
		cfg.CookiesFile = *cookies
	}
	if cfg.Debug {
		bilicopy.SetPerfOutput(os.Stderr)
	}

	s := bilicopy.New()
	defer s.Close()
	if err := cfg.Apply(s); err != nil {
		log.Fatalf("configure: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *login {
		fmt.Println("Waiting for sign-in in the browser window...")
		if err := s.Login(ctx); err != nil {
			log.Fatalf("login: %v", err)
		}
		if err := s.SaveCookies(*saveCookies); err != nil {
			log.Fatalf("save cookies: %v", err)
		}
		fmt.Printf("Logged in! Cookies saved to %s\n", *saveCookies)
		return
	}

	pageURL := *video
	if strings.HasPrefix(pageURL, "BV") {
		pageURL = s.VideoURL(pageURL)
	}

	if *overlay {
		fmt.Println("Overlay running, press Ctrl-C to quit.")
		if err := s.RunOverlay(ctx, pageURL, bilicopy.SystemClipboard{}); err != nil {
			log.Fatalf("overlay: %v", err)
		}
		return
	}

	if *info {
		v, err := s.GetVideo(ctx, bilicopy.VideoID(pageURL))
		if err != nil {
			log.Fatalf("get video: %v", err)
		}
		printVideo(v)
		return
	}

	var page bilicopy.Page
	if *useBrowser {
		page, err = s.OpenPage(ctx, pageURL)
	} else {
		page, err = s.FetchPage(ctx, pageURL)
	}
	if err != nil {
		log.Fatalf("load page: %v", err)
	}

	if *list {
		printFields(ctx, s, page)
		return
	}

	if *field == "" {
		log.Fatal("one of --field, --list, --info or --overlay is required")
	}
	copier := bilicopy.NewCopier(page, bilicopy.SystemClipboard{}, bilicopy.NewTerminalNotifier(os.Stderr), s).
		WithLogger(s.Logger())
	if err := copier.Run(ctx, *field); err != nil {
		os.Exit(1)
	}
}

func printFields(ctx context.Context, s *bilicopy.Scraper, page bilicopy.Page) {
	for _, f := range bilicopy.Fields() {
		v, ok := f.Extract(page)
		if !ok {
			v = "-"
		}
		fmt.Printf("%s\t%s\n", f.Label, v)
	}
	if n, err := s.GetCommentCount(ctx, bilicopy.VideoID(page.URL())); err == nil {
		fmt.Printf("评论\t%d\n", n)
	} else {
		s.Logger().Printf("获取评论数失败: %v", err)
		fmt.Printf("评论\t-\n")
	}
	if d, ok := bilicopy.PublishDate(page); ok {
		fmt.Printf("日期\t%s\n", d)
	} else {
		fmt.Printf("日期\t-\n")
	}
	fmt.Printf("URL\t%s\n", page.URL())
}

func printVideo(v bilicopy.Video) {
	fmt.Printf("Video:     %s\n", v.ID)
	fmt.Printf("Title:     %s\n", v.Title)
	fmt.Printf("Author:    %s (%d)\n", v.Author, v.AuthorID)
	fmt.Printf("Followers: %d\n", v.Followers)
	fmt.Printf("Published: %s\n", v.Published.Format("2006.01.02"))
	fmt.Printf("Views:     %d\n", v.Views)
	fmt.Printf("Likes:     %d\n", v.Likes)
	fmt.Printf("Coins:     %d\n", v.Coins)
	fmt.Printf("Favorites: %d\n", v.Favorites)
	fmt.Printf("Shares:    %d\n", v.Shares)
	fmt.Printf("Comments:  %d\n", v.Comments)
	fmt.Printf("Danmaku:   %d\n", v.Danmaku)
}
