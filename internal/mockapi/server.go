package mockapi

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Server is a self-contained stand-in for the remote access-control
// backend. It serves the same endpoints with the same wire shapes, so
// the dashboard can be developed and tested without the real
// deployment.
type Server struct {
	addr      string
	log       zerolog.Logger
	server    *http.Server
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time

	mu        sync.Mutex
	cameras   map[string]wireCamera
	employees []wireEmployee
	logs      []wireLog
	alerts    []wireAlert
}

// NewServer creates a mock backend listening on addr.
func NewServer(addr string, log zerolog.Logger) *Server {
	if addr == "" {
		addr = "0.0.0.0:5000"
	}
	ctx, cancel := context.WithCancel(context.Background())
	now := time.Now().UTC()
	return &Server{
		addr:      addr,
		log:       log.With().Str("component", "mockapi").Logger(),
		ctx:       ctx,
		cancel:    cancel,
		startTime: now,
		cameras:   seedCameras(now),
		employees: seedEmployees(),
		logs:      seedLogs(),
		alerts:    seedAlerts(now),
	}
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.server = &http.Server{
		Handler:           s.Handler(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	go s.server.Serve(listener)
	return nil
}

// Handler returns the route tree without binding a listener, for use
// with httptest.
func (s *Server) Handler() http.Handler {
	return s.router()
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests)

	api := r.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/system/stats", s.handleSystemStats)
	api.GET("/cameras", s.handleCameras)
	api.GET("/cameras/:id", s.handleCamera)
	api.GET("/cameras/:id/health", s.handleCameraHealth)
	api.GET("/cameras/:id/stream", s.handleCameraStream)
	api.GET("/access/logs", s.handleAccessLogs)
	api.GET("/employees", s.handleEmployees)
	api.GET("/employees/:id", s.handleEmployee)
	api.POST("/employees", s.handleCreateEmployee)
	api.PUT("/employees/:id", s.handleUpdateEmployee)
	api.DELETE("/employees/:id", s.handleDeleteEmployee)
	api.GET("/alerts", s.handleAlerts)
	return r
}

func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.log.Debug().
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Int("status", c.Writer.Status()).
		Dur("elapsed", time.Since(start)).
		Msg("request")
}

func (s *Server) handleHealth(c *gin.Context) {
	s.mu.Lock()
	active := 0
	for _, cam := range s.cameras {
		if cam.Status == "online" {
			active++
		}
	}
	total := len(s.cameras)
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  gin.H{"status": "connected"},
		"cameras":   gin.H{"active": active, "total": total},
	})
}

func (s *Server) handleCameras(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{
		"cameras": s.cameras,
		"count":   len(s.cameras),
	})
}

func (s *Server) handleCamera(c *gin.Context) {
	s.mu.Lock()
	cam, ok := s.cameras[c.Param("id")]
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Camera not found"})
		return
	}
	c.JSON(http.StatusOK, cam)
}

func (s *Server) handleCameraHealth(c *gin.Context) {
	s.mu.Lock()
	cam, ok := s.cameras[c.Param("id")]
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Camera not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"camera_id":       cam.ID,
		"status":          cam.Status,
		"health":          cam.Health,
		"last_frame_time": cam.LastFrameTime,
		"fps":             cam.FPS,
		"person_count":    cam.PersonCount,
		"errors":          []string{},
	})
}

func (s *Server) handleCameraStream(c *gin.Context) {
	s.mu.Lock()
	cam, ok := s.cameras[c.Param("id")]
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Camera not found"})
		return
	}
	body := fmt.Sprintf("<html><body><h2>Mock Stream</h2><p>Camera: %s</p><p>Status: %s</p></body></html>",
		cam.ID, cam.Status)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(body))
}

func (s *Server) handleAccessLogs(c *gin.Context) {
	cameraID := c.Query("camera_id")
	personID := c.Query("person_id")
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	s.mu.Lock()
	total := len(s.logs)
	filtered := make([]wireLog, 0, total)
	for _, l := range s.logs {
		if cameraID != "" && l.CameraID != cameraID {
			continue
		}
		if personID != "" && l.PersonID != personID {
			continue
		}
		filtered = append(filtered, l)
	}
	s.mu.Unlock()

	if limit >= 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":  filtered,
		"count": len(filtered),
		"total": total,
	})
}

func (s *Server) handleEmployees(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{
		"employees": s.employees,
		"count":     len(s.employees),
	})
}

func (s *Server) handleEmployee(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, emp := range s.employees {
		if emp.ID == c.Param("id") {
			c.JSON(http.StatusOK, emp)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
}

func (s *Server) handleCreateEmployee(c *gin.Context) {
	var req struct {
		Name         string `json:"name" binding:"required"`
		Email        string `json:"email" binding:"required"`
		Department   string `json:"department" binding:"required"`
		Position     string `json:"position" binding:"required"`
		FaceSnapshot string `json:"face_snapshot"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required field"})
		return
	}

	emp := wireEmployee{
		ID:             "EMP-" + uuid.NewString()[:8],
		Name:           req.Name,
		Email:          req.Email,
		Department:     req.Department,
		Position:       req.Position,
		FaceSnapshot:   req.FaceSnapshot,
		RegisteredDate: time.Now().UTC().Format(time.RFC3339),
	}

	s.mu.Lock()
	s.employees = append(s.employees, emp)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, emp)
}

func (s *Server) handleUpdateEmployee(c *gin.Context) {
	var req struct {
		Name       *string `json:"name"`
		Email      *string `json:"email"`
		Department *string `json:"department"`
		Position   *string `json:"position"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.employees {
		if s.employees[i].ID != c.Param("id") {
			continue
		}
		if req.Name != nil {
			s.employees[i].Name = *req.Name
		}
		if req.Email != nil {
			s.employees[i].Email = *req.Email
		}
		if req.Department != nil {
			s.employees[i].Department = *req.Department
		}
		if req.Position != nil {
			s.employees[i].Position = *req.Position
		}
		c.JSON(http.StatusOK, s.employees[i])
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
}

func (s *Server) handleDeleteEmployee(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.employees {
		if s.employees[i].ID != c.Param("id") {
			continue
		}
		s.employees = append(s.employees[:i], s.employees[i+1:]...)
		c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
}

func (s *Server) handleSystemStats(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	totalPeople, active := 0, 0
	for _, cam := range s.cameras {
		totalPeople += cam.PersonCount
		if cam.Status == "online" {
			active++
		}
	}

	granted, denied, tailgating := 0, 0, 0
	for _, l := range s.logs {
		switch outcomeOf(l) {
		case "granted":
			granted++
		case "denied":
			denied++
		case "tailgating":
			tailgating++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"total_people_detected": totalPeople,
		"active_cameras":        active,
		"total_cameras":         len(s.cameras),
		"granted_access":        granted,
		"denied_access":         denied,
		"tailgating_incidents":  tailgating,
		"total_employees":       len(s.employees),
		"system_uptime":         time.Since(s.startTime).Truncate(time.Second).String(),
		"average_fps":           25.2,
		"last_updated":          time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleAlerts(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	unresolved := 0
	for _, a := range s.alerts {
		if !a.Resolved {
			unresolved++
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"alerts":     s.alerts,
		"count":      len(s.alerts),
		"unresolved": unresolved,
	})
}
