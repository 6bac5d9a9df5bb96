package models

import "time"

// Meal is a single diet-log entry. Date is epoch milliseconds and is the
// sole sort key for listing.
type Meal struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OnDiet      bool      `json:"onDiet"`
	Date        int64     `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MealSummary is the aggregate returned by the meal summary endpoint.
type MealSummary struct {
	Total      int `json:"total"`
	OnDiet     int `json:"onDiet"`
	OffDiet    int `json:"offDiet"`
	BestStreak int `json:"bestStreak"`
}
