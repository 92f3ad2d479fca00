// Package intent holds the keyword vocabularies and the regex-based
// extractors the router and the context tracker share.
//
// Every function here is pure and best-effort: a miss returns false or an
// empty slice, never an error.
package intent

var financeKeywords = []string{
	"stock", "price", "share", "market", "crypto", "bitcoin", "ethereum",
	"portfolio", "investment", "trading", "finance", "financial", "nasdaq",
	"dow jones", "s&p", "ticker", "earnings", "dividend",
	"aapl", "googl", "msft", "tsla", "amzn", "meta", "nvda", "amd",
}

var newsKeywords = []string{
	"news", "breaking", "current events", "headlines", "article",
	"tech news", "business news", "sports news", "latest news",
	"what's happening", "recent news", "today's news",
}

var musicKeywords = []string{
	"music", "generate music", "create music", "compose", "song", "melody",
	"beat", "instrumental", "audio", "sound", "make music",
}

var dataKeywords = []string{
	"data", "analyze", "csv", "dataset", "statistics", "correlation",
	"data analysis", "analyze data", "process data", "spreadsheet",
}

var travelKeywords = []string{
	"trip", "travel", "vacation", "holiday", "visit", "go to", "itinerary",
	"plan", "destination", "flight", "hotel", "places to see",
	"things to do", "attractions", "tour",
}

// travelTerms are checked only once a destination is already known.
var travelTerms = []string{
	"hotel", "accommodation", "stay", "lodge", "flight", "airline", "airport",
	"transport", "restaurant", "food", "eat", "dining", "attraction", "visit",
	"see", "do", "weather", "climate", "temperature", "cost", "price",
	"budget", "expensive", "currency", "money", "exchange", "culture",
	"language", "custom",
}

var videoQuestionWords = []string{
	"what", "who", "when", "where", "why", "how", "explain", "describe",
	"tell me about", "what is", "who is", "what does", "how does",
	"why does", "summary", "summarize", "main points", "key points",
}

var personalTerms = []string{
	"how old", "age", "birthday", "born", "birth", "married", "wife",
	"husband", "family", "children", "net worth", "salary", "income",
	"personal life", "biography", "bio", "background", "history",
}

var videoTerms = []string{
	"video", "clip", "footage", "scene", "moment", "says", "mentions",
	"discusses", "shows", "demonstrates", "explains in video", "from video",
}

var followUpIndicators = []string{
	"also", "and", "what about", "how about", "can you", "tell me more",
	"explain", "why", "how", "when", "where",
}

var mathKeywords = []string{"calculate", "compute", "math", "equation", "solve"}

// StockSymbols is the fixed ticker allow-list used for symbol extraction.
// Tickers outside this list are never recorded in the finance context.
var StockSymbols = []string{"AAPL", "GOOGL", "MSFT", "TSLA", "AMZN", "META", "NVDA", "AMD", "NFLX", "UBER"}

// FollowUpMaxLength is the length below which any message counts as a
// follow-up. It misclassifies short topic changes; that is accepted.
const FollowUpMaxLength = 50
