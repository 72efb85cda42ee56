package service

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidID marks a malformed object identifier from a caller.
var ErrInvalidID = errors.New("invalid identifier")

// parseObjectID converts a hex user/entry identifier into an ObjectID,
// mapping parse failures to ErrInvalidID so handlers can answer 400.
func parseObjectID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}
