// Package projection decides which parts of a classification response are
// shown. FilterSet holds the user's toggles and Project turns a response plus
// a filter set into an ordered list of display fields.
package projection
