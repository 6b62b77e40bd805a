// Package repository handles all interactions with the database.
//
// It contains the MongoDB queries and aggregations, abstracting data
// access away from the service layer. Documents are mapped with bson
// tags; IDs are primitive.ObjectID throughout.
package repository
