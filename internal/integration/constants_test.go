package integration_test

const (
	TestMovieTitle       = "Test Movie"
	TestMovieYear        = 2010
	TestMovieDirector    = "Jane Doe"
	TestMovieDescription = "A test movie description."
	TestMovieRating      = 7.5

	TestReviewAuthor  = "Alice"
	TestReviewRating  = 4
	TestReviewComment = "Worth watching twice."
)

var TestMovieGenres = []string{"Action", "Drama"}
