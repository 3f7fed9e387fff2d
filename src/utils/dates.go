package utils

// ShortDashDateLayout is the YYYY-MM-DD layout used by date query parameters.
const ShortDashDateLayout = "2006-01-02"
