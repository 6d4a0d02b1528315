// Package menu normalizes the raw LinqConnect feed into per-day menus and
// decides which day to show.
//
// Normalize walks sessions → menu plans → days → meals → recipe categories →
// recipes and produces a Snapshot keyed by MealType and Date. Items from
// several plans on the same date are concatenated; MergeCategories combines
// them by category for display. SelectTargetDate applies the daily cutoff,
// and Sensor builds the per-meal display state for the chosen date.
package menu
