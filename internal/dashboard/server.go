package dashboard

import (
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/sampleworks/reddit-collector/internal/domain"
	"github.com/sampleworks/reddit-collector/internal/snapshot"
)

// StartServer renders charts over the posts snapshot at postsFile. Data is
// re-read per request so the page tracks ongoing collections.
func StartServer(postsFile string, port string) error {
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		posts, err := snapshot.Read[domain.Post](postsFile)
		if err != nil {
			http.Error(w, "no snapshot collected yet", http.StatusServiceUnavailable)
			return
		}

		// 1. Subreddit Share
		pie := charts.NewPie()
		pie.SetGlobalOptions(
			charts.WithTitleOpts(opts.Title{Title: "Subreddit Share"}),
			charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		)

		subCounts := make(map[string]int)
		for _, p := range posts {
			subCounts[p.Subreddit]++
		}

		var pieItems []opts.PieData
		for k, v := range subCounts {
			pieItems = append(pieItems, opts.PieData{Name: k, Value: v})
		}
		pie.AddSeries("Posts", pieItems)

		// 2. Flair Breakdown
		bar := charts.NewBar()
		bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Flair Breakdown"}))

		flairCounts := make(map[string]int)
		for _, p := range posts {
			flair := p.LinkFlairText
			if flair == "" {
				flair = "(none)"
			}
			flairCounts[flair]++
		}

		var barX []string
		var barY []opts.BarData
		for k, v := range flairCounts {
			barX = append(barX, k)
			barY = append(barY, opts.BarData{Value: v})
		}
		bar.SetXAxis(barX).AddSeries("Posts", barY)

		pie.Render(w)
		bar.Render(w)
	})

	return http.ListenAndServe(":"+port, nil)
}
