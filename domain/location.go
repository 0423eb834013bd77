package domain

import "errors"

var (
	MessageSuccessAddLocation    = "location added successfully"
	MessageSuccessGetLocations   = "locations retrieved successfully"
	MessageSuccessRenameLocation = "location renamed successfully"

	MessageFailedAddLocation    = "failed to add location"
	MessageFailedGetLocations   = "failed to retrieve locations"
	MessageFailedRenameLocation = "failed to rename location"

	ErrLocationExists   = errors.New("location already exists in your pantry")
	ErrLocationNotFound = errors.New("location not found")
)

type (
	AddLocationRequest struct {
		Name string `json:"name" validate:"required,max=50"`
	}

	RenameLocationRequest struct {
		Name string `json:"name" validate:"required,max=50"`
	}

	LocationResponse struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}
)
