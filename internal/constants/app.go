// Package constants provides shared constants for the jalaali-picker application
package constants

// AppIdentifier is the name the application reports in logs and page titles
const AppIdentifier = "Jalaali Picker"
