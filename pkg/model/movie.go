package model

// Movie mirrors a movies_data/{tconst} document. The mixed field casing
// follows the live collection, which was imported from an IMDb-style dataset.
type Movie struct {
	Title       string   `firestore:"Title"`
	Year        string   `firestore:"Year"`
	Genres      []string `firestore:"Genre"`
	Poster      string   `firestore:"Poster"`
	Language    string   `firestore:"Language"`
	Overview    string   `firestore:"overview"`
	TrailerURL  string   `firestore:"trailer_url"`
	VoteAverage float64  `firestore:"vote_average"`
}

// TrendingMovie is an entry of the read-only trending_movies collection.
type TrendingMovie struct {
	ID          string  `firestore:"-"`
	Title       string  `firestore:"title"`
	Overview    string  `firestore:"overview"`
	PosterPath  string  `firestore:"poster_path"`
	VoteAverage float64 `firestore:"vote_average"`
	GenreIDs    []int64 `firestore:"genre_ids"`
	TrailerURL  string  `firestore:"trailer_url"`
}

// Genre is an entry of the read-only genres collection.
type Genre struct {
	ID   int64  `firestore:"id"`
	Name string `firestore:"name"`
}

// DiscoverMovie is an entry of the read-only tmdb_movies collection,
// filterable by genre.
type DiscoverMovie struct {
	Title       string  `firestore:"title"`
	Overview    string  `firestore:"overview"`
	PosterPath  string  `firestore:"poster_path"`
	VoteAverage float64 `firestore:"vote_average"`
	GenreID     int64   `firestore:"genre_id"`
	TrailerURL  string  `firestore:"trailer_url"`
}
