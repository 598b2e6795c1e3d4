package httpapi

var StatusFor = statusFor
