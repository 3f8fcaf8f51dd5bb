package access

import "dpiportal/models"

// Service category tags.
const (
	ServiceAI        = "ai"
	ServiceBVN       = "bvn"
	ServiceNIN       = "nin"
	ServiceSMS       = "sms"
	ServiceMaps      = "maps"
	ServiceUSSD      = "ussd"
	ServiceIVR       = "ivr"
	ServiceTwoWaySMS = "two-way-sms"
	ServiceDPI       = "dpi"
)

// AllServices is every category known to the sandbox, in menu order.
var AllServices = []string{
	ServiceAI,
	ServiceBVN,
	ServiceNIN,
	ServiceSMS,
	ServiceMaps,
	ServiceUSSD,
	ServiceIVR,
	ServiceTwoWaySMS,
	ServiceDPI,
}

// rules is keyed by partner id. 9001 is an internal reviewer account that is
// not in the partner directory.
var rules = map[int]models.AccessRule{
	102:  {StartupID: 102, AllowedServices: []string{ServiceBVN, ServiceNIN}},
	103:  {StartupID: 103, AllowedServices: []string{ServiceNIN, ServiceSMS, ServiceUSSD, ServiceIVR}},
	105:  {StartupID: 105, AllowedServices: []string{ServiceSMS, ServiceTwoWaySMS}},
	106:  {StartupID: 106, AllowedServices: []string{ServiceMaps, ServiceUSSD, ServiceSMS}},
	108:  {StartupID: 108, AllowedServices: []string{ServiceNIN, ServiceUSSD}},
	9001: {StartupID: 9001, AllowedServices: []string{ServiceAI, ServiceDPI}},
}
