package gin

import (
	"net/http"
	"strings"

	"github.com/fwojciec/marketway"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to MarketWay Navigator API",
		"health":  "/health",
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// chatSearchResponse and chatInfoResponse are the two shapes of /chat.
type chatSearchResponse struct {
	Query     string `json:"query"`
	Direction string `json:"direction"`
	Name      string `json:"name"`
}

type chatInfoResponse struct {
	Info string `json:"info"`
}

func (s *Server) handleChat(c *gin.Context) {
	if s.Assistant == nil {
		s.writeError(c, unavailable("chat"))
		return
	}
	q, ok := c.GetQuery("q")
	if !ok {
		s.writeError(c, marketway.Errorf(marketway.EINVALID, "query parameter q required"))
		return
	}

	reply, err := s.Assistant.Chat(c.Request.Context(), q)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.Header("X-Reply-ID", reply.ID)
	if reply.Action == marketway.ActionInfo {
		c.JSON(http.StatusOK, chatInfoResponse{Info: reply.Info})
		return
	}
	c.JSON(http.StatusOK, chatSearchResponse{Query: q, Direction: reply.Direction, Name: reply.Name})
}

func (s *Server) handleLocate(c *gin.Context) {
	if s.Locator == nil {
		s.writeError(c, unavailable("locator"))
		return
	}
	mode, err := marketway.ParseMatchMode(c.Query("mode"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	keyword := c.Query("q")

	results, err := s.Locator.Locate(c.Request.Context(), keyword, mode)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"keyword": keyword,
		"mode":    mode,
		"results": results,
	})
}

type directionsRequest struct {
	ID   string `form:"id"`
	Name string `form:"name"`
}

func (s *Server) handleDirections(c *gin.Context) {
	if s.Navigator == nil {
		s.writeError(c, unavailable("navigator"))
		return
	}

	var req directionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		s.writeError(c, marketway.Errorf(marketway.EINVALID, "invalid query: %v", err))
		return
	}

	var d *marketway.Directions
	var err error
	switch {
	case req.ID != "":
		d, err = s.Navigator.NavigateToLine(c.Request.Context(), req.ID)
	case strings.TrimSpace(req.Name) != "":
		d, err = s.Navigator.Navigate(c.Request.Context(), req.Name)
	default:
		err = marketway.Errorf(marketway.EINVALID, "query parameter name or id required")
	}
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) handleLine(c *gin.Context) {
	if s.Lines == nil {
		s.writeError(c, unavailable("catalog"))
		return
	}
	line, err := s.Lines.FindLineByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, line)
}

type aisleRequest struct {
	Aisle int `uri:"aisle" binding:"required,min=1"`
}

func (s *Server) handleAisleLines(c *gin.Context) {
	if s.Lines == nil {
		s.writeError(c, unavailable("catalog"))
		return
	}
	var req aisleRequest
	if err := c.ShouldBindUri(&req); err != nil {
		s.writeError(c, marketway.Errorf(marketway.EINVALID, "aisle must be a positive number, got %q", c.Param("aisle")))
		return
	}
	lines, err := s.Lines.FindLinesInAisle(c.Request.Context(), req.Aisle)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"aisle": req.Aisle,
		"side":  marketway.SideForAisle(req.Aisle),
		"lines": lines,
	})
}

func (s *Server) handleReload(c *gin.Context) {
	if s.Reloader == nil {
		s.writeError(c, unavailable("reload"))
		return
	}
	idx, err := s.Reloader.Reload(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}

	violations := make([]string, 0, len(idx.Violations()))
	for _, v := range idx.Violations() {
		violations = append(violations, marketway.ErrorMessage(v))
	}
	c.JSON(http.StatusOK, gin.H{
		"lines":      idx.Len(),
		"aisles":     idx.Aisles(),
		"violations": violations,
	})
}
