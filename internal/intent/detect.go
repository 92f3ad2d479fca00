package intent

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	digitsPattern   = regexp.MustCompile(`\d+`)
	operatorPattern = regexp.MustCompile(`[+\-*/=]`)
)

// The detectors below expect a lower-cased, trimmed message.

func IsFinance(msg string) bool { return containsAny(msg, financeKeywords) }

func IsNews(msg string) bool { return containsAny(msg, newsKeywords) }

func IsMusic(msg string) bool { return containsAny(msg, musicKeywords) }

func IsData(msg string) bool { return containsAny(msg, dataKeywords) }

// IsTravel reports whether msg carries direct travel-planning intent.
func IsTravel(msg string) bool { return containsAny(msg, travelKeywords) }

// HasTravelTerms reports travel follow-up vocabulary (hotels, food, budget...).
func HasTravelTerms(msg string) bool { return containsAny(msg, travelTerms) }

// HasVideoTerms reports explicit references to the video itself.
func HasVideoTerms(msg string) bool { return containsAny(msg, videoTerms) }

// HasPersonalTerms reports biographical vocabulary.
func HasPersonalTerms(msg string) bool { return containsAny(msg, personalTerms) }

// HasQuestionWord reports a question word at the start of msg or as a
// space-delimited phrase inside it.
func HasQuestionWord(msg string) bool { return hasPhrase(msg, videoQuestionWords) }

// IsMath reports a math keyword, or digits together with an operator.
func IsMath(msg string) bool {
	if containsAny(msg, mathKeywords) {
		return true
	}
	return digitsPattern.MatchString(msg) && operatorPattern.MatchString(msg)
}

// IsFollowUp reports discourse markers that continue the previous topic.
// Any message shorter than FollowUpMaxLength also qualifies.
func IsFollowUp(msg string) bool {
	return hasPhrase(msg, followUpIndicators) || utf8.RuneCountInString(msg) < FollowUpMaxLength
}

func containsAny(msg string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(msg, k) {
			return true
		}
	}
	return false
}

func hasPhrase(msg string, phrases []string) bool {
	for _, p := range phrases {
		if strings.HasPrefix(msg, p) || strings.Contains(msg, " "+p+" ") {
			return true
		}
	}
	return false
}
