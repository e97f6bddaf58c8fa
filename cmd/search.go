package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/export"
	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/model"
)

var (
	searchTitle    string
	searchCompany  string
	searchLocation string
	searchSchool   string
	searchMax      int
	searchUnscoped bool
	searchOut      string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for contacts matching the given filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := initPipeline("search")
		if err != nil {
			return err
		}

		maxResults := searchMax
		if maxResults == 0 {
			maxResults = cfg.Search.MaxResults
		}

		contacts, meta, err := p.Search(cmd.Context(), model.SearchFilters{
			JobTitle:      searchTitle,
			Company:       searchCompany,
			Location:      searchLocation,
			SchoolAlumni:  searchSchool,
			MaxResults:    maxResults,
			AllowUnscoped: searchUnscoped,
		})
		if err != nil {
			return eris.Wrap(err, "search")
		}

		zap.L().Info("search finished",
			zap.String("run_id", meta.RunID),
			zap.String("strategy", meta.StrategyUsed),
			zap.Int("returned", meta.Returned))

		if searchOut != "" {
			if err := export.WriteXLSX(searchOut, contacts); err != nil {
				return err
			}
			zap.L().Info("wrote workbook", zap.String("path", searchOut))
			return nil
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Meta     model.SearchMeta `json:"meta"`
			Contacts []model.Contact  `json:"contacts"`
		}{Meta: meta, Contacts: contacts})
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchTitle, "title", "", "job title to match")
	searchCmd.Flags().StringVar(&searchCompany, "company", "", "target company")
	searchCmd.Flags().StringVar(&searchLocation, "location", "", "free-text location, e.g. \"San Francisco, CA\"")
	searchCmd.Flags().StringVar(&searchSchool, "school", "", "restrict to alumni of this school")
	searchCmd.Flags().IntVar(&searchMax, "max", 0, "max contacts to return (default from config)")
	searchCmd.Flags().BoolVar(&searchUnscoped, "unscoped", false, "permit searching without a resolved location")
	searchCmd.Flags().StringVar(&searchOut, "out", "", "write results to this .xlsx file instead of stdout")
	rootCmd.AddCommand(searchCmd)
}
