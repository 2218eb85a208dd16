package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/linkfeed/internal/server/models"
	"github.com/dmitrijs2005/linkfeed/internal/server/services"
	"github.com/dmitrijs2005/linkfeed/internal/server/session"
	"github.com/gin-gonic/gin"
)

func (s *Server) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}

	p, err := s.users.Signup(c.Request.Context(), services.SignupInput{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		writeError(c, err)
		return
	}

	loggerFrom(c).Info(c.Request.Context(), "user signed up", "user_id", p.User.ID)
	c.JSON(http.StatusCreated, authView{Token: p.Token, User: newUserView(p.User)})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}

	p, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, authView{Token: p.Token, User: newUserView(p.User)})
}

func (s *Server) feed(c *gin.Context) {
	var req feedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		writeError(c, bindError(err))
		return
	}

	ctx := c.Request.Context()
	f, err := s.feeds.Resolve(ctx, req.args())
	if err != nil {
		writeError(c, err)
		return
	}
	rel, err := s.feeds.Relations(ctx, f.Links)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, feedView{ID: f.ID, Links: newLinkViews(f.Links, rel), Count: f.Count})
}

func (s *Server) link(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	l, err := s.links.Link(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if l == nil {
		c.JSON(http.StatusOK, nil)
		return
	}

	s.renderLink(c, http.StatusOK, l)
}

func (s *Server) post(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}

	sess := session.FromContext(c.Request.Context())
	l, err := s.links.Post(c.Request.Context(), sess, services.PostInput{Description: req.Description, URL: req.URL})
	if err != nil {
		writeError(c, err)
		return
	}

	loggerFrom(c).Info(c.Request.Context(), "link posted", "link_id", l.ID)
	s.renderLink(c, http.StatusCreated, l)
}

func (s *Server) updateLink(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}

	l, err := s.links.Update(c.Request.Context(), id, models.LinkPatch{Description: req.Description, URL: req.URL})
	if err != nil {
		writeError(c, err)
		return
	}

	s.renderLink(c, http.StatusOK, l)
}

func (s *Server) deleteLink(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	l, err := s.links.Delete(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	loggerFrom(c).Info(c.Request.Context(), "link deleted", "link_id", l.ID)
	c.JSON(http.StatusOK, newLinkView(l, nil))
}

func (s *Server) vote(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	ctx := c.Request.Context()
	r, err := s.links.Vote(ctx, session.FromContext(ctx), id)
	if err != nil {
		writeError(c, err)
		return
	}
	rel, err := s.links.Relations(ctx, []*models.Link{r.Link})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, voteView{ID: r.Vote.ID, Link: newLinkView(r.Link, rel), User: newUserView(r.User)})
}

func (s *Server) userLinks(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	ctx := c.Request.Context()
	links, err := s.users.UserLinks(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	rel, err := s.links.Relations(ctx, links)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newLinkViews(links, rel))
}

func (s *Server) renderLink(c *gin.Context, status int, l *models.Link) {
	rel, err := s.links.Relations(c.Request.Context(), []*models.Link{l})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(status, newLinkView(l, rel))
}
