package domain

import "regexp"

type detector struct {
	category Category
	probe    *regexp.Regexp
}

// detectors are tried in order against pasted sample text.
var detectors = []detector{
	{CategoryEmail, regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)},
	{CategoryPhone, regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)},
	{CategoryURL, regexp.MustCompile(`https?://`)},
	{CategoryIPAddress, regexp.MustCompile(`\b(?:[0-9]{1,3}\.){3}[0-9]{1,3}\b`)},
	{CategoryCreditCard, regexp.MustCompile(`\b(?:\d{4}[-\s]?){3}\d{4}\b`)},
	{CategoryDate, regexp.MustCompile(`\b(?:0?[1-9]|1[0-2])/(?:0?[1-9]|[12][0-9]|3[01])/\d{4}\b`)},
	{CategorySSN, regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)},
	{CategoryHexColor, regexp.MustCompile(`#[0-9A-Fa-f]{6}\b`)},
}

// AnalyzeSample detects a well-known shape in sample text.
// It returns CategoryDefault and false when nothing is recognised.
func AnalyzeSample(sample string) (Category, bool) {
	for _, d := range detectors {
		if d.probe.MatchString(sample) {
			return d.category, true
		}
	}
	return CategoryDefault, false
}

// GenerateFromSample is the offline path for pasted samples.
func GenerateFromSample(sample string) Artifacts {
	category, _ := AnalyzeSample(sample)
	return Generate(category, sample)
}
