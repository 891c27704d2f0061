// Package top250 synchronizes the catalog's ranked Top 250 list into
// local collections, one collection per configured name.
package top250
