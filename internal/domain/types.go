package domain

// Item is a recyclable material category. Image is a filename relative to the
// uploads directory; the API layer turns it into an absolute URL.
type Item struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Image string `json:"image"`
}

type Point struct {
	ID        int64   `json:"id"`
	Image     string  `json:"image"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	WhatsApp  string  `json:"whatsapp"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
	UF        string  `json:"uf"`
}

type PointItem struct {
	PointID int64
	ItemID  int64
}

// PointFilter holds the optional search predicates for listing points. A nil
// field imposes no constraint. A non-nil Items pointing at an empty slice is
// still a constraint and matches nothing.
type PointFilter struct {
	City   *string
	Region *string
	Items  *[]int64
}
