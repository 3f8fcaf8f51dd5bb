package navigation

import "dpiportal/models"

// builtinPages is the documentation traversal order. Regenerate with navgen
// when the sandbox types change.
var builtinPages = []models.NavigationPage{
	{Title: "Introduction", Path: "/docs"},
	{Title: "Authentication", Path: "/docs/authentication"},
	{Title: "Errors", Path: "/docs/errors"},
	{Title: "BVN Verification", Path: "/docs/bvn/verify", Service: "bvn"},
	{Title: "BVN Status", Path: "/docs/bvn/status", Service: "bvn"},
	{Title: "NIN Lookup", Path: "/docs/nin/lookup", Service: "nin"},
	{Title: "NIN Face Match", Path: "/docs/nin/face-match", Service: "nin"},
	{Title: "Send SMS", Path: "/docs/sms/send", Service: "sms"},
	{Title: "SMS Delivery Reports", Path: "/docs/sms/reports", Service: "sms"},
	{Title: "Two-Way SMS Inbox", Path: "/docs/two-way-sms/inbox", Service: "two-way-sms"},
	{Title: "Two-Way SMS Reply", Path: "/docs/two-way-sms/reply", Service: "two-way-sms"},
	{Title: "Geocode Address", Path: "/docs/maps/geocode", Service: "maps"},
	{Title: "Directions", Path: "/docs/maps/directions", Service: "maps"},
	{Title: "USSD Session", Path: "/docs/ussd/session", Service: "ussd"},
	{Title: "USSD Menu Builder", Path: "/docs/ussd/menu", Service: "ussd"},
	{Title: "IVR Call Flow", Path: "/docs/ivr/call-flow", Service: "ivr"},
	{Title: "IVR Recordings", Path: "/docs/ivr/recordings", Service: "ivr"},
	{Title: "AI Translation", Path: "/docs/ai/translate", Service: "ai"},
	{Title: "AI Speech to Text", Path: "/docs/ai/speech-to-text", Service: "ai"},
	{Title: "DPI Consent Registry", Path: "/docs/dpi/consent", Service: "dpi"},
	{Title: "Changelog", Path: "/docs/changelog"},
}
