package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Ryanmedeirosp/Diet-Daily-app/database"
	"github.com/Ryanmedeirosp/Diet-Daily-app/middleware"
	"github.com/Ryanmedeirosp/Diet-Daily-app/models"
	"github.com/Ryanmedeirosp/Diet-Daily-app/services"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type mealRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	OnDiet      bool   `json:"onDiet"`
	Date        string `json:"date"`
}

// mealDateFormats are tried in order when parsing the request date. Both
// date-only and full timestamp forms are accepted.
var mealDateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseMealDate(value string) (int64, error) {
	for _, format := range mealDateFormats {
		if t, err := time.Parse(format, value); err == nil {
			return t.UnixMilli(), nil
		}
	}
	return 0, errors.New("invalid date")
}

func CreateMeal(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req mealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Title == "" || req.Date == "" {
		http.Error(w, "title and date are required", http.StatusBadRequest)
		return
	}

	date, err := parseMealDate(req.Date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	now := time.Now()
	_, err = database.DB.Exec(`
		INSERT INTO meals (id, user_id, title, description, on_diet, date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, uuid.NewString(), user.ID, req.Title, req.Description, req.OnDiet, date, now, now)

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func GetMeals(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	meals, err := listMeals(user.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"meals": meals})
}

// GetMeal returns a single meal, or null when the id does not exist or is
// owned by another account. The two cases are deliberately
// indistinguishable to the caller.
func GetMeal(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	id := vars["id"]

	var m models.Meal
	err := database.DB.QueryRow(`
		SELECT id, user_id, title, description, on_diet, date, created_at, updated_at
		FROM meals
		WHERE user_id = ? AND id = ?
	`, user.ID, id).Scan(&m.ID, &m.UserID, &m.Title, &m.Description, &m.OnDiet, &m.Date, &m.CreatedAt, &m.UpdatedAt)

	w.Header().Set("Content-Type", "application/json")
	if err == sql.ErrNoRows {
		json.NewEncoder(w).Encode(map[string]interface{}{"meal": nil})
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{"meal": m})
}

func GetMealSummary(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	// The analyzer is order-sensitive and receives the listing order,
	// date descending.
	meals, err := listMeals(user.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	summary := services.AnalyzeMeals(meals)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"summary": summary})
}

// UpdateMeal replaces the four mutable fields. A request that matches no
// row still reports success with zero rows affected; this mirrors the
// create status rather than surfacing a not-found.
func UpdateMeal(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	id := vars["id"]

	var req mealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Title == "" || req.Date == "" {
		http.Error(w, "title and date are required", http.StatusBadRequest)
		return
	}

	date, err := parseMealDate(req.Date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, err = database.DB.Exec(`
		UPDATE meals
		SET title = ?, description = ?, on_diet = ?, date = ?, updated_at = ?
		WHERE user_id = ? AND id = ?
	`, req.Title, req.Description, req.OnDiet, date, time.Now(), user.ID, id)

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func DeleteMeal(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	id := vars["id"]

	res, err := database.DB.Exec("DELETE FROM meals WHERE user_id = ? AND id = ?", user.ID, id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if deleted == 0 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func listMeals(userID string) ([]models.Meal, error) {
	rows, err := database.DB.Query(`
		SELECT id, user_id, title, description, on_diet, date, created_at, updated_at
		FROM meals
		WHERE user_id = ?
		ORDER BY date DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meals := []models.Meal{}
	for rows.Next() {
		var m models.Meal
		err := rows.Scan(&m.ID, &m.UserID, &m.Title, &m.Description, &m.OnDiet, &m.Date, &m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			return nil, err
		}
		meals = append(meals, m)
	}

	return meals, rows.Err()
}
