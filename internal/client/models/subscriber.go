package models

import "time"

type ContactType string

const (
	ContactEmail   ContactType = "email"
	ContactPhone   ContactType = "phone"
	ContactUnknown ContactType = "unknown"
)

const (
	SubscriberActive    = "active"
	SourceWebsiteFooter = "website_footer"
)

type Subscriber struct {
	ID           string      `json:"id"`
	Contact      string      `json:"contact"`
	Type         ContactType `json:"type"`
	SubscribedAt time.Time   `json:"subscribedAt"`
	Source       string      `json:"source"`
	Status       string      `json:"status"`
}

type SubscriberStats struct {
	Total     int `json:"total"`
	Emails    int `json:"emails"`
	Phones    int `json:"phones"`
	ThisMonth int `json:"thisMonth"`
}
