package services

import "github.com/google/uuid"

const (
	userIDPrefix       = "USER_"
	orderIDPrefix      = "ORDER_"
	subscriberIDPrefix = "SUB_"
)

func newID(prefix string) string {
	return prefix + uuid.NewString()
}
