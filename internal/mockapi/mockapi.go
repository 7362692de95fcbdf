// Package mockapi is an in-memory stand-in for the résumé REST backend. It
// serves any collection name, assigns ids on create and can be told to fail
// the next request, which is what the client-side error paths need.
package mockapi

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Record is one stored JSON object.
type Record = map[string]any

type fault struct {
	method string
	status int
	body   string
}

// Server holds the collections and the gin engine serving them.
type Server struct {
	mu          sync.Mutex
	collections map[string][]Record
	faults      []fault
	requests    map[string]int

	engine *gin.Engine
}

// New builds a Server. Pass extra middleware such as gin.Logger() to trace
// requests.
func New(middleware ...gin.HandlerFunc) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		collections: map[string][]Record{},
		requests:    map[string]int{},
		engine:      gin.New(),
	}
	s.engine.Use(gin.Recovery())
	s.engine.Use(middleware...)
	s.engine.Use(s.countRequests, s.injectFaults)

	s.engine.GET("/:resource", s.list)
	s.engine.GET("/:resource/owner/:owner", s.listByOwner)
	s.engine.POST("/:resource", s.create)
	s.engine.PUT("/:resource/:id", s.update)
	s.engine.DELETE("/:resource/:id", s.remove)
	return s
}

// Handler exposes the engine for httptest or http.ListenAndServe.
func (s *Server) Handler() http.Handler { return s.engine }

// Seed stores records under resource, assigning ids to those without one,
// and returns the ids in order.
func (s *Server) Seed(resource string, records ...Record) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(records))
	for _, r := range records {
		rec := copyRecord(r)
		if _, ok := rec["id"]; !ok {
			rec["id"] = uuid.NewString()
		}
		s.collections[resource] = append(s.collections[resource], rec)
		ids = append(ids, fmt.Sprint(rec["id"]))
	}
	return ids
}

// Records returns a copy of the stored records of resource.
func (s *Server) Records(resource string) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, 0, len(s.collections[resource]))
	for _, r := range s.collections[resource] {
		out = append(out, copyRecord(r))
	}
	return out
}

// FailNext makes the next request with the given method answer status with
// body verbatim. Faults queue up in call order.
func (s *Server) FailNext(method string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = append(s.faults, fault{method: strings.ToUpper(method), status: status, body: body})
}

// Requests returns how many requests with method have been served.
func (s *Server) Requests(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[strings.ToUpper(method)]
}

func (s *Server) countRequests(c *gin.Context) {
	s.mu.Lock()
	s.requests[c.Request.Method]++
	s.mu.Unlock()
	c.Next()
}

func (s *Server) injectFaults(c *gin.Context) {
	s.mu.Lock()
	var f *fault
	for i := range s.faults {
		if s.faults[i].method == c.Request.Method {
			ff := s.faults[i]
			f = &ff
			s.faults = append(s.faults[:i], s.faults[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	if f == nil {
		c.Next()
		return
	}
	contentType := "text/plain; charset=utf-8"
	switch {
	case strings.HasPrefix(strings.TrimSpace(f.body), "{"):
		contentType = "application/json; charset=utf-8"
	case strings.HasPrefix(strings.TrimSpace(f.body), "<"):
		contentType = "text/html; charset=utf-8"
	}
	c.Data(f.status, contentType, []byte(f.body))
	c.Abort()
}

func (s *Server) list(c *gin.Context) {
	c.JSON(http.StatusOK, s.Records(c.Param("resource")))
}

func (s *Server) listByOwner(c *gin.Context) {
	owner := c.Param("owner")
	out := []Record{}
	for _, r := range s.Records(c.Param("resource")) {
		if fmt.Sprint(r["pessoaId"]) == owner {
			out = append(out, r)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) create(c *gin.Context) {
	var rec Record
	if err := c.ShouldBindJSON(&rec); err != nil || rec == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid JSON body"})
		return
	}
	rec["id"] = uuid.NewString()

	s.mu.Lock()
	resource := c.Param("resource")
	s.collections[resource] = append(s.collections[resource], rec)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, rec)
}

func (s *Server) update(c *gin.Context) {
	var rec Record
	if err := c.ShouldBindJSON(&rec); err != nil || rec == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid JSON body"})
		return
	}
	id := c.Param("id")
	rec["id"] = id

	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.collections[c.Param("resource")]
	for i := range items {
		if fmt.Sprint(items[i]["id"]) == id {
			items[i] = rec
			c.JSON(http.StatusOK, rec)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "record not found"})
}

func (s *Server) remove(c *gin.Context) {
	id := c.Param("id")
	resource := c.Param("resource")

	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.collections[resource]
	for i := range items {
		if fmt.Sprint(items[i]["id"]) == id {
			s.collections[resource] = append(items[:i:i], items[i+1:]...)
			c.Status(http.StatusNoContent)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "record not found"})
}

func copyRecord(r Record) Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// SeedSample fills the three résumé collections with a small profile owned
// by ownerID.
func (s *Server) SeedSample(ownerID string) {
	s.Seed("educacao",
		Record{"instituicao": "Instituto Federal", "curso": "Systems Analysis and Development", "dataInicio": "2019-02-01", "dataFim": "2022-12-15", "pessoaId": ownerID},
		Record{"instituicao": "State University", "curso": "Software Engineering (postgraduate)", "dataInicio": "2024-03-01", "dataFim": nil, "pessoaId": ownerID},
	)
	s.Seed("experiencias",
		Record{"empresa": "Acme Tech", "cargo": "Backend Developer", "descricao": "REST services and data pipelines.", "dataInicio": "2023-01-09", "dataFim": nil, "pessoaId": ownerID},
		Record{"empresa": "Startup Lab", "cargo": "Intern", "descricao": "Internal tools.", "dataInicio": "2021-06-01", "dataFim": "2022-11-30", "pessoaId": ownerID},
	)
	s.Seed("habilidades",
		Record{"nome": "Go", "nivel": "Advanced", "pessoaId": ownerID},
		Record{"nome": "SQL", "nivel": "Intermediate", "pessoaId": ownerID},
		Record{"nome": "Docker", "nivel": "Basic", "pessoaId": ownerID},
	)
}
