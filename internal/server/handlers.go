package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aretw0/stickies/pkg/core"
)

// ConfirmHeader carries the answer to the delete confirmation prompt.
const ConfirmHeader = "X-Confirm"

type noteRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

func errorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid note id")
		return 0, false
	}
	return id, true
}

func (s *Server) listNotes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"notes": s.store.Search(c.Query("q"))})
}

func (s *Server) getNote(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	n, found := s.store.Get(id)
	if !found {
		errorResponse(c, http.StatusNotFound, "note not found")
		return
	}
	c.JSON(http.StatusOK, n)
}

func (s *Server) createNote(c *gin.Context) {
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	n, added := s.store.Add(c.Request.Context(), req.Title, req.Text)
	if !added {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusCreated, n)
}

func (s *Server) updateNote(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if !s.store.Update(c.Request.Context(), id, req.Title, req.Text) {
		errorResponse(c, http.StatusNotFound, "note not found")
		return
	}
	n, _ := s.store.Get(id)
	c.JSON(http.StatusOK, n)
}

func (s *Server) deleteNote(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if _, found := s.store.Get(id); !found {
		errorResponse(c, http.StatusNotFound, "note not found")
		return
	}

	ctx := c.Request.Context()
	if v := c.GetHeader(ConfirmHeader); v != "" {
		if answer, err := strconv.ParseBool(v); err == nil {
			ctx = core.WithConfirmed(ctx, answer)
		}
	}

	if !s.store.Delete(ctx, id) {
		errorResponse(c, http.StatusConflict, "delete not confirmed")
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) state(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"store":   s.store.State(),
		"clients": s.hub.ids(),
	})
}
