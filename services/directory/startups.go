package directory

import "dpiportal/models"

// DefaultStartup is returned when no partner matches the signed-in identity.
var DefaultStartup = models.Startup{
	ID:       0,
	Email:    "sandbox@dpi.gov.ng",
	Username: "sandbox",
	Name:     "DPI Sandbox",
}

var startups = []models.Startup{
	{ID: 101, Email: "dev@agrolink.ng", Username: "agrolink", Name: "AgroLink", ServiceCode: "*347*101#"},
	{ID: 102, Email: "tech@paystackle.com", Username: "paystackle", Name: "Paystackle"},
	{ID: 103, Email: "api@healthbridge.ng", Username: "healthbridge", Name: "HealthBridge", ServiceCode: "*347*103#", USSDEndpoint: "health-bridge"},
	{ID: 104, Email: "eng@kudiway.io", Username: "kudiway", Name: "KudiWay", ServiceCode: "*347*104#"},
	{ID: 105, Email: "hello@edutrack.ng", Username: "edutrack", Name: "EduTrack"},
	{ID: 106, Email: "devops@ridesafe.ng", Username: "ridesafe", Name: "RideSafe", ServiceCode: "*347*106#", USSDEndpoint: "ride_safe"},
	{ID: 107, Email: "team@farmcred.ng", Username: "farmcred", Name: "FarmCred"},
	{ID: 108, Email: "api@votecheck.ng", Username: "votecheck", Name: "VoteCheck", ServiceCode: "*347*108#"},
}
