package entities

type RoomAvailability struct {
	Room   string   `json:"room"`
	Booked []string `json:"booked"`
}

type AvailabilityResponse struct {
	Date    string             `json:"date"`
	Rooms   []RoomAvailability `json:"rooms"`
	Options []string           `json:"options"`
}
