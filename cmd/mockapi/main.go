// cmd/mockapi/main.go
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"bookhouse/internal/catalog"
	"bookhouse/internal/mockapi"
)

func main() {
	store := mockapi.NewStore()
	seed(store)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	fmt.Printf("🚀 Starting mock library API on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, mockapi.NewHandler(store)))
}

// seed loads a handful of books so the client has something to browse.
func seed(store *mockapi.Store) {
	books := []catalog.CreateBookInput{
		{Title: "Dune", Author: "Frank Herbert", Genre: catalog.GenreFantasy, ISBN: "9780441172719", Copies: 5, Image: "https://covers.example.com/dune.jpg", Description: "Arrakis, the desert planet."},
		{Title: "A Brief History of Time", Author: "Stephen Hawking", Genre: catalog.GenreScience, ISBN: "9780553380163", Copies: 3, Image: "https://covers.example.com/abhot.jpg"},
		{Title: "The Diary of a Young Girl", Author: "Anne Frank", Genre: catalog.GenreBiography, ISBN: "9780553296983", Copies: 2, Image: "https://covers.example.com/diary.jpg"},
		{Title: "Sapiens", Author: "Yuval Noah Harari", Genre: catalog.GenreHistory, ISBN: "9780062316097", Copies: 4, Image: "https://covers.example.com/sapiens.jpg"},
		{Title: "Pride and Prejudice", Author: "Jane Austen", Genre: catalog.GenreFiction, ISBN: "9780141439518", Copies: 6, Image: "https://covers.example.com/pp.jpg"},
	}
	for _, b := range books {
		store.CreateBook(b)
	}
}
