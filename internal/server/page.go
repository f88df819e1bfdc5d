package server

import (
	_ "embed"
	"html/template"
	"log"
	"net/http"
)

//go:embed index.html
var indexHTML string

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

type pageData struct {
	Slug           string
	RestaurantName string
}

func (s *Server) renderPage(w http.ResponseWriter, slug, restaurantName string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, pageData{Slug: slug, RestaurantName: restaurantName}); err != nil {
		log.Printf("[page] render %s: %v", slug, err)
	}
}
