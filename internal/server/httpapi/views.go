package httpapi

import (
	"time"

	"github.com/dmitrijs2005/linkfeed/internal/server/models"
	"github.com/dmitrijs2005/linkfeed/internal/server/services"
)

type userView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type linkView struct {
	ID          int64      `json:"id"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	CreatedAt   time.Time  `json:"createdAt"`
	PostedBy    *userView  `json:"postedBy"`
	Voters      []userView `json:"voters"`
}

type authView struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

type feedView struct {
	ID    string     `json:"id"`
	Links []linkView `json:"links"`
	Count int        `json:"count"`
}

type voteView struct {
	ID   int64    `json:"id"`
	Link linkView `json:"link"`
	User userView `json:"user"`
}

type errorView struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func newUserView(u *models.User) userView {
	return userView{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

func newLinkView(l *models.Link, rel *services.Relations) linkView {
	v := linkView{
		ID:          l.ID,
		Description: l.Description,
		URL:         l.URL,
		CreatedAt:   l.CreatedAt,
		Voters:      []userView{},
	}
	if rel == nil {
		return v
	}
	if p := rel.PostedBy(l); p != nil {
		pv := newUserView(p)
		v.PostedBy = &pv
	}
	for _, u := range rel.VotersOf(l) {
		v.Voters = append(v.Voters, newUserView(u))
	}
	return v
}

func newLinkViews(links []*models.Link, rel *services.Relations) []linkView {
	out := make([]linkView, 0, len(links))
	for _, l := range links {
		out = append(out, newLinkView(l, rel))
	}
	return out
}
