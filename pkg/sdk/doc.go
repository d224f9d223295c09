// Package cinefind embeds the cinefind discovery engine in a Go program.
//
// The client talks to TMDB directly and, when an OpenAI-compatible key is
// given, interprets free-text requests before searching. Without a key every
// search runs as a plain title search ranked by popularity.
//
//	client, err := cinefind.New(
//	    cinefind.WithTMDB(os.Getenv("TMDB_API_KEY")),
//	    cinefind.WithOpenAI(os.Getenv("OPENAI_API_KEY"), ""),
//	)
//	if err != nil {
//	    return err
//	}
//	res, _ := client.Search(ctx, "가을 배경의 한국 로맨스 영화")
//	for _, m := range res.Movies {
//	    fmt.Println(m.Title, m.ReleaseDate)
//	}
//
// Browsing needs no interpreter:
//
//	page, _ := client.Popular(ctx, 1)
//	bundle, _ := client.MovieBundle(ctx, page.Results[0].ID)
package cinefind
