// Package html renders scanned lines into highlighted HTML.
package html
