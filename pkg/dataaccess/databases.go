package dataaccess

import (
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB is the Mongo client. This is a connection pool.
var MongoDB *mongo.Client

const (
	mongoDatabase = "warden"

	// collectionTickets holds one row per open ticket.
	collectionTickets = "tickets"

	// collectionTicketSettings holds one row per guild recording where the
	// intake message was last published.
	collectionTicketSettings = "ticket_settings"
)
