package music

// Song is a fully hydrated track. Artist and Album are display strings built by
// joining the names of every associated artist/album.
type Song struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Artist      string `json:"artist"`
	Album       string `json:"album"`
	ImageURL    string `json:"image"`
	DiscNumber  int32  `json:"disc_number"`
	TrackNumber int32  `json:"track_number"`
	Duration    int32  `json:"duration"` // seconds
	ISRC        string `json:"isrc"`
	ReleaseDate string `json:"release_date"`
}

type Artist struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image"`
}

type Album struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Artist      string  `json:"artist"`
	ImageURL    string  `json:"image"`
	ReleaseDate string  `json:"release_date"`
	TrackCount  int32   `json:"track_count"`
	UPC         string  `json:"upc"`
	Label       *string `json:"label,omitempty"`
}
