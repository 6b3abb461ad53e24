package server

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ArtuomMerkulov/WEB-analitic-logs/internal/aggregator"
	"github.com/ArtuomMerkulov/WEB-analitic-logs/internal/hub"
	"github.com/ArtuomMerkulov/WEB-analitic-logs/internal/output"
	"github.com/ArtuomMerkulov/WEB-analitic-logs/internal/parser"
	"github.com/ArtuomMerkulov/WEB-analitic-logs/internal/pipeline"
	"github.com/ArtuomMerkulov/WEB-analitic-logs/internal/source"
)

//go:embed all:web
var webFS embed.FS

const dateLayout = "2006-01-02"

// Server exposes the aggregation pipeline as a JSON API plus an embedded
// dashboard. Every request recomputes from the current in-memory log; the
// pipeline is cheap at portal volumes and stays a pure function.
type Server struct {
	engine  *gin.Engine
	src     *source.Log
	hub     *hub.Hub
	units   []string
	started time.Time
	port    string
}

// New creates the dashboard server.
func New(src *source.Log, h *hub.Hub, units []string, port string) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.RedirectTrailingSlash = false
	engine.RedirectFixedPath = false

	s := &Server{
		engine:  engine,
		src:     src,
		hub:     h,
		units:   units,
		started: time.Now(),
		port:    port,
	}

	s.setupRoutes()
	return s
}

// serveEmbedded reads a file from the embedded FS once and serves it with
// the given content type.
func serveEmbedded(webContent fs.FS, name string, contentType string) gin.HandlerFunc {
	data, err := fs.ReadFile(webContent, name)
	return func(c *gin.Context) {
		if err != nil {
			c.String(http.StatusNotFound, "file not found: %s", name)
			return
		}
		c.Data(http.StatusOK, contentType, data)
	}
}

func (s *Server) setupRoutes() {
	webContent, _ := fs.Sub(webFS, "web")

	// Dashboard assets.
	s.engine.GET("/", serveEmbedded(webContent, "index.html", "text/html; charset=utf-8"))
	s.engine.GET("/style.css", serveEmbedded(webContent, "style.css", "text/css; charset=utf-8"))
	s.engine.GET("/app.js", serveEmbedded(webContent, "app.js", "application/javascript; charset=utf-8"))

	// Health check.
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"uptime":      time.Since(s.started).Truncate(time.Second).String(),
			"log_file":    s.src.Path(),
			"total_lines": s.src.Len(),
		})
	})

	// Aggregation API.
	s.engine.GET("/api/units", s.handleUnits)
	s.engine.GET("/api/employees", s.handleEmployees)
	s.engine.GET("/api/failures", s.handleFailures)
	s.engine.GET("/api/stats", s.handleStats)

	// Live refresh notifications.
	s.engine.GET("/ws", s.handleWebSocket)
}

// report is the JSON shape both aggregation endpoints produce: a table
// (monthly columns) plus a chart series projected to display labels.
type report struct {
	Start         string                    `json:"start"`
	End           string                    `json:"end"`
	Granularity   string                    `json:"granularity"`
	RowLabel      string                    `json:"row_label"`
	Columns       []string                  `json:"columns"`
	Headers       []string                  `json:"headers"`
	Labels        []string                  `json:"labels"`
	Rows          []output.Row              `json:"rows"`
	Series        map[string]map[string]int `json:"series"`
	ParseFailures int                       `json:"parse_failures"`
}

func (s *Server) buildReport(res pipeline.Result, table output.Table, series map[string]map[string]int) report {
	columns := make([]string, len(res.Buckets))
	headers := make([]string, len(res.Buckets))
	for i, b := range res.Buckets {
		columns[i] = fmt.Sprintf("%04d-%02d", b.Year, b.Month)
		headers[i] = output.ColumnHeader(b)
	}
	return report{
		Start:         res.Start.Format(dateLayout),
		End:           res.End.Format(dateLayout),
		Granularity:   res.Granularity.String(),
		RowLabel:      table.RowLabel,
		Columns:       columns,
		Headers:       headers,
		Labels:        res.Labels(),
		Rows:          table.Rows,
		Series:        series,
		ParseFailures: len(res.Failures),
	}
}

func (s *Server) handleUnits(c *gin.Context) {
	start, end := s.dateRange(c)
	res := pipeline.Run(s.src.Lines(), start, end, s.units)

	table := output.UnitTable(res.UnitMatrix, res.Units, res.Buckets)
	series := aggregator.Project(res.UnitMatrix, res.Granularity, res.End)
	c.JSON(http.StatusOK, s.buildReport(res, table, series))
}

func (s *Server) handleEmployees(c *gin.Context) {
	unit := c.Query("unit")
	if unit == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing unit parameter"})
		return
	}

	start, end := s.dateRange(c)
	res := pipeline.Run(s.src.Lines(), start, end, s.units)

	known := false
	for _, u := range res.Units {
		if u == unit {
			known = true
			break
		}
	}
	if !known {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown unit: " + unit})
		return
	}

	m := res.Employees(unit)
	table := output.EmployeeTable(m, res.Buckets)
	series := aggregator.Project(m, res.Granularity, res.End)
	c.JSON(http.StatusOK, s.buildReport(res, table, series))
}

func (s *Server) handleFailures(c *gin.Context) {
	_, failures := parser.ParseAll(s.src.Lines())
	c.JSON(http.StatusOK, gin.H{
		"count":    len(failures),
		"failures": failures,
	})
}

func (s *Server) handleStats(c *gin.Context) {
	records, failures := parser.ParseAll(s.src.Lines())
	c.JSON(http.StatusOK, hub.Snapshot{
		GeneratedAt:   time.Now(),
		TotalLines:    s.src.Len(),
		TotalRecords:  len(records),
		ParseFailures: len(failures),
	})
}

// dateRange extracts the requested range from the query string. Absent or
// unparseable dates fall back to the default window, the last three months.
func (s *Server) dateRange(c *gin.Context) (time.Time, time.Time) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	start := today.AddDate(0, -3, 0)
	end := today

	if v := c.Query("start"); v != "" {
		if t, err := time.Parse(dateLayout, v); err == nil {
			start = t
		}
	}
	if v := c.Query("end"); v != "" {
		if t, err := time.Parse(dateLayout, v); err == nil {
			end = t
		}
	}
	return start, end
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start runs the server. Blocks until the server is stopped.
func (s *Server) Start() error {
	return s.engine.Run(":" + s.port)
}
