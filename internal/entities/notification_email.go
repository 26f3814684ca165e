package entities

type BookingEmailData struct {
	UserName    string
	Product     string
	Date        string
	StartHour   string
	EndHour     string
	Attendees   int
	Status      string
	CurrentYear int
}

type MailboxEmailData struct {
	UserName    string
	Subject     string
	Message     string
	PDFURL      string
	CurrentYear int
}
