package fitbit

import (
	"context"
	"fmt"
)

// FoodService handles food, water and meal endpoints.
type FoodService struct {
	service
}

// Meal type ids accepted by food logging.
const (
	MealBreakfast      = 1
	MealMorningSnack   = 2
	MealLunch          = 3
	MealAfternoonSnack = 4
	MealDinner         = 5
	MealAnytime        = 7
)

const (
	defaultWaterUnit      = "fl oz"
	defaultFoodTimeSeries = "caloriesIn"
)

// LogFoodOptions creates a food log entry. Set FoodID to log a catalog food
// (Favorite applies) or FoodName to log a custom one (BrandName and Calories
// apply).
type LogFoodOptions struct {
	FoodID     int64   `form:"foodId,omitempty"`
	FoodName   string  `form:"foodName,omitempty"`
	MealTypeID int     `form:"mealTypeId"`
	UnitID     int     `form:"unitId"`
	Amount     float64 `form:"amount"`
	Date       string  `form:"date"`
	Favorite   bool    `form:"favorite,omitempty"`
	BrandName  string  `form:"brandName,omitempty"`
	Calories   int     `form:"calories,omitempty"`
}

// EditFoodLogOptions changes an existing food log entry.
type EditFoodLogOptions struct {
	MealTypeID int     `form:"mealTypeId"`
	UnitID     int     `form:"unitId"`
	Amount     float64 `form:"amount"`
}

// FoodGoalOptions sets the calorie goal directly or through an intensity.
type FoodGoalOptions struct {
	Calories     int    `form:"calories,omitempty"`
	Intensity    string `form:"intensity,omitempty"`
	Personalized bool   `form:"personalized"`
}

// WaterOptions logs or updates a water entry. Unit defaults to "fl oz".
type WaterOptions struct {
	Date   string  `form:"date,omitempty"`
	Amount float64 `form:"amount"`
	Unit   string  `form:"unit"`
}

// MealOptions creates or edits a meal made of a single food.
type MealOptions struct {
	Name        string  `form:"name"`
	Description string  `form:"description"`
	FoodID      int64   `form:"foodId"`
	UnitID      int     `form:"unitId"`
	Amount      float64 `form:"amount"`
}

// CustomFoodOptions creates a private food.
type CustomFoodOptions struct {
	Name                         string  `form:"name"`
	DefaultFoodMeasurementUnitID int     `form:"defaultFoodMeasurementUnitId"`
	DefaultServingSize           float64 `form:"defaultServingSize"`
	Calories                     int     `form:"calories"`
	FormType                     string  `form:"formType,omitempty"`
	Description                  string  `form:"description,omitempty"`
}

type waterGoalForm struct {
	Target float64 `form:"target"`
}

type searchQuery struct {
	Query string `form:"query"`
}

// Locales returns the food locales used to search, log or create food.
func (s *FoodService) Locales(ctx context.Context) (*Response, error) {
	return s.get(ctx, "/1/foods/locales.json", nil)
}

// Units returns the valid food measurement units.
func (s *FoodService) Units(ctx context.Context) (*Response, error) {
	return s.get(ctx, "/1/foods/units.json", nil)
}

// Search searches the public food database and the user's private foods.
func (s *FoodService) Search(ctx context.Context, query string) (*Response, error) {
	return s.get(ctx, "/1/foods/search.json", searchQuery{Query: query})
}

// Food returns the details of one food.
func (s *FoodService) Food(ctx context.Context, foodID int64) (*Response, error) {
	return s.get(ctx, fmt.Sprintf("/1/foods/%d.json", foodID), nil)
}

// Goals returns the daily calorie consumption goal.
func (s *FoodService) Goals(ctx context.Context) (*Response, error) {
	return s.userGet(ctx, v1, nil, "/foods/log/goal.json")
}

// UpdateGoals sets the daily calorie consumption goal.
func (s *FoodService) UpdateGoals(ctx context.Context, opts FoodGoalOptions) (*Response, error) {
	return s.userPost(ctx, v1, opts, "/foods/log/goal.json")
}

// Logs returns the food log summary for a day.
func (s *FoodService) Logs(ctx context.Context, date string) (*Response, error) {
	return s.userGet(ctx, v1, nil, "/foods/log/date/%s.json", date)
}

// Log creates a food log entry.
func (s *FoodService) Log(ctx context.Context, opts LogFoodOptions) (*Response, error) {
	if opts.FoodID != 0 {
		opts.BrandName, opts.Calories = "", 0
	} else {
		opts.Favorite = false
	}
	return s.userPost(ctx, v1, opts, "/foods/log.json")
}

// EditLog changes a food log entry.
func (s *FoodService) EditLog(ctx context.Context, logID int64, opts EditFoodLogOptions) (*Response, error) {
	return s.userPost(ctx, v1, opts, "/foods/log/%d.json", logID)
}

// DeleteLog deletes a food log entry.
func (s *FoodService) DeleteLog(ctx context.Context, logID int64) (*Response, error) {
	return s.userDelete(ctx, v1, true, "/foods/log/%d.json", logID)
}

// WaterLogs returns the water log summary for a day.
func (s *FoodService) WaterLogs(ctx context.Context, date string) (*Response, error) {
	return s.userGet(ctx, v1, nil, "/foods/log/water/date/%s.json", date)
}

// LogWater creates a water log entry.
func (s *FoodService) LogWater(ctx context.Context, opts WaterOptions) (*Response, error) {
	if opts.Unit == "" {
		opts.Unit = defaultWaterUnit
	}
	return s.userPost(ctx, v1, opts, "/foods/log/water.json")
}

// UpdateWaterLog changes the amount of a water log entry.
func (s *FoodService) UpdateWaterLog(ctx context.Context, logID int64, opts WaterOptions) (*Response, error) {
	if opts.Unit == "" {
		opts.Unit = defaultWaterUnit
	}
	opts.Date = ""
	return s.userPost(ctx, v1, opts, "/foods/log/water/%d.json", logID)
}

// DeleteWaterLog deletes a water log entry.
func (s *FoodService) DeleteWaterLog(ctx context.Context, logID int64) (*Response, error) {
	return s.userDelete(ctx, v1, true, "/foods/log/water/%d.json", logID)
}

// WaterGoal returns the daily water goal.
func (s *FoodService) WaterGoal(ctx context.Context) (*Response, error) {
	return s.userGet(ctx, v1, nil, "/foods/log/water/goal.json")
}

// UpdateWaterGoal sets the daily water goal in the user's unit system.
func (s *FoodService) UpdateWaterGoal(ctx context.Context, target float64) (*Response, error) {
	return s.userPost(ctx, v1, waterGoalForm{Target: target}, "/foods/log/water/goal.json")
}

// Favorites returns the user's favorite foods.
func (s *FoodService) Favorites(ctx context.Context) (*Response, error) {
	return s.userGet(ctx, v1, nil, "/foods/log/favorite.json")
}

// AddFavorite adds a food to the user's favorites.
func (s *FoodService) AddFavorite(ctx context.Context, foodID int64) (*Response, error) {
	return s.userPost(ctx, v1, nil, "/foods/log/favorite/%d.json", foodID)
}

// DeleteFavorite removes a food from the user's favorites.
func (s *FoodService) DeleteFavorite(ctx context.Context, foodID int64) (*Response, error) {
	return s.userDelete(ctx, v1, true, "/foods/log/favorite/%d.json", foodID)
}

// Frequent returns the user's frequently logged foods.
func (s *FoodService) Frequent(ctx context.Context) (*Response, error) {
	return s.userGet(ctx, v1, nil, "/foods/log/frequent.json")
}

// Recent returns the user's recently logged foods.
func (s *FoodService) Recent(ctx context.Context) (*Response, error) {
	return s.userGet(ctx, v1, nil, "/foods/log/recent.json")
}

// Meals returns the user's meals.
func (s *FoodService) Meals(ctx context.Context) (*Response, error) {
	return s.userGet(ctx, v1, nil, "/meals.json")
}

// CreateMeal creates a meal.
func (s *FoodService) CreateMeal(ctx context.Context, opts MealOptions) (*Response, error) {
	return s.userPost(ctx, v1, opts, "/meals.json")
}

// EditMeal replaces the contents of a meal.
func (s *FoodService) EditMeal(ctx context.Context, mealID int64, opts MealOptions) (*Response, error) {
	return s.userPost(ctx, v1, opts, "/meals/%d.json", mealID)
}

// DeleteMeal deletes a meal.
func (s *FoodService) DeleteMeal(ctx context.Context, mealID int64) (*Response, error) {
	return s.userDelete(ctx, v1, true, "/meals/%d.json", mealID)
}

// CreateCustomFood creates a private food for the user.
func (s *FoodService) CreateCustomFood(ctx context.Context, opts CustomFoodOptions) (*Response, error) {
	return s.userPost(ctx, v1, opts, "/foods.json")
}

// DeleteCustomFood deletes a private food.
func (s *FoodService) DeleteCustomFood(ctx context.Context, foodID int64) (*Response, error) {
	return s.userDelete(ctx, v1, true, "/foods/%d.json", foodID)
}

// TimeSeries returns "caloriesIn" or "water" values over a range. An empty
// resource selects caloriesIn.
func (s *FoodService) TimeSeries(ctx context.Context, resource, baseDate, endOrPeriod string) (*Response, error) {
	if resource == "" {
		resource = defaultFoodTimeSeries
	}
	return s.userGet(ctx, v1, nil, "/foods/log/%s/date/%s/%s.json", resource, baseDate, endOrPeriod)
}
