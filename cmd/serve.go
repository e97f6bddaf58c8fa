package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/enrich"
	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/export"
	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/model"
	"github.com/deenabandi004-byte/Final-offerloop-sub001/pkg/peoplesearch"
)

var servePort int

// searchRequest is the wire shape of POST /api/search.
type searchRequest struct {
	JobTitle      string `json:"job_title"`
	Company       string `json:"company"`
	Location      string `json:"location"`
	SchoolAlumni  string `json:"school_alumni,omitempty"`
	MaxResults    int    `json:"max_results,omitempty"`
	AllowUnscoped bool   `json:"allow_unscoped,omitempty"`
	Exclude       []struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Company   string `json:"company"`
	} `json:"exclude,omitempty"`
}

func (r searchRequest) filters(defaultMax int) model.SearchFilters {
	f := model.SearchFilters{
		JobTitle:      r.JobTitle,
		Company:       r.Company,
		Location:      r.Location,
		SchoolAlumni:  r.SchoolAlumni,
		MaxResults:    r.MaxResults,
		AllowUnscoped: r.AllowUnscoped,
	}
	if f.MaxResults <= 0 {
		f.MaxResults = defaultMax
	}
	if len(r.Exclude) > 0 {
		f.ExcludeKeys = make(map[model.ContactIdentity]struct{}, len(r.Exclude))
		for _, e := range r.Exclude {
			f.ExcludeKeys[model.NewContactIdentity(e.FirstName, e.LastName, e.Company)] = struct{}{}
		}
	}
	return f
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the contact search HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		p, err := initPipeline("serve")
		if err != nil {
			return err
		}

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))

		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Post("/api/search", func(w http.ResponseWriter, req *http.Request) {
			filters, ok := decodeSearch(w, req)
			if !ok {
				return
			}

			contacts, meta, err := p.Search(req.Context(), filters)
			if err != nil {
				searchError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"meta":     meta,
				"contacts": contacts,
			})
		})

		r.Post("/api/search/export", func(w http.ResponseWriter, req *http.Request) {
			filters, ok := decodeSearch(w, req)
			if !ok {
				return
			}

			contacts, _, err := p.Search(req.Context(), filters)
			if err != nil {
				searchError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			w.Header().Set("Content-Disposition", `attachment; filename="contacts.xlsx"`)
			if err := export.WriteXLSXTo(w, contacts); err != nil {
				zap.L().Error("export failed", zap.Error(err))
			}
		})

		r.Get("/api/resolve/{id}", func(w http.ResponseWriter, req *http.Request) {
			contact, err := p.Resolve(req.Context(), chi.URLParam(req, "id"))
			if errors.Is(err, peoplesearch.ErrNoResults) {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "profile not found"})
				return
			}
			if err != nil {
				zap.L().Error("resolve failed", zap.Error(err))
				writeJSON(w, http.StatusBadGateway, map[string]string{"error": "resolution failed"})
				return
			}
			writeJSON(w, http.StatusOK, contact)
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func decodeSearch(w http.ResponseWriter, req *http.Request) (model.SearchFilters, bool) {
	var body searchRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return model.SearchFilters{}, false
	}
	if body.JobTitle == "" && body.Company == "" && body.SchoolAlumni == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "at least one of job_title, company or school_alumni is required"})
		return model.SearchFilters{}, false
	}
	return body.filters(cfg.Search.MaxResults), true
}

func searchError(w http.ResponseWriter, err error) {
	if errors.Is(err, enrich.ErrUnresolvedLocation) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "location could not be resolved; pass allow_unscoped to search anyway"})
		return
	}
	zap.L().Error("search failed", zap.Error(err))
	writeJSON(w, http.StatusBadGateway, map[string]string{"error": "search failed"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
