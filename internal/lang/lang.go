// Package lang holds the static display-string tables. The aggregation
// core never touches these; it emits enum values and the presentation
// layer translates them here.
package lang

// Keys addressed by the presentation layer.
const (
	KeyGroupChat     = "group_chat"
	KeyPrivateChat   = "private_chat"
	KeyName          = "name"
	KeyParticipants  = "participants"
	KeyChatType      = "chat_type"
	KeyMessages      = "messages"
	KeyCallDuration  = "call_duration"
	KeyPhotos        = "photos"
	KeyGifs          = "gifs"
	KeyVideos        = "videos"
	KeyFiles         = "files"
	KeyCharacters    = "characters"
	KeySentMessages  = "sent_messages"
	KeyTotalMessages = "total_messages"
	KeyConversations = "conversations"
	KeyStartDate     = "start_date"
	KeyPerDay        = "per_day"
	KeyPerWeek       = "per_week"
	KeyPerMonth      = "per_month"
	KeyPerYear       = "per_year"
	KeyLoading       = "loading"
	KeySearch        = "search"
	KeyNotApplicable = "not_applicable"
)

// DefaultLanguage is used when the configured language has no table.
const DefaultLanguage = "en"

var tables = map[string]map[string]string{
	"en": {
		KeyGroupChat:     "Group chat",
		KeyPrivateChat:   "Private chat",
		KeyName:          "Name",
		KeyParticipants:  "Participants",
		KeyChatType:      "Type",
		KeyMessages:      "Messages",
		KeyCallDuration:  "Call duration",
		KeyPhotos:        "Photos",
		KeyGifs:          "GIFs",
		KeyVideos:        "Videos",
		KeyFiles:         "Files",
		KeyCharacters:    "Characters",
		KeySentMessages:  "Sent messages",
		KeyTotalMessages: "Total messages",
		KeyConversations: "Conversations",
		KeyStartDate:     "First message",
		KeyPerDay:        "Per day",
		KeyPerWeek:       "Per week",
		KeyPerMonth:      "Per month",
		KeyPerYear:       "Per year",
		KeyLoading:       "Loading",
		KeySearch:        "Search",
		KeyNotApplicable: "N/A",
	},
	"pl": {
		KeyGroupChat:     "Czat grupowy",
		KeyPrivateChat:   "Czat prywatny",
		KeyName:          "Nazwa",
		KeyParticipants:  "Uczestnicy",
		KeyChatType:      "Typ",
		KeyMessages:      "Wiadomości",
		KeyCallDuration:  "Czas połączeń",
		KeyPhotos:        "Zdjęcia",
		KeyGifs:          "GIF-y",
		KeyVideos:        "Filmy",
		KeyFiles:         "Pliki",
		KeyCharacters:    "Znaki",
		KeySentMessages:  "Wysłane wiadomości",
		KeyTotalMessages: "Wszystkie wiadomości",
		KeyConversations: "Konwersacje",
		KeyStartDate:     "Pierwsza wiadomość",
		KeyPerDay:        "Dziennie",
		KeyPerWeek:       "Tygodniowo",
		KeyPerMonth:      "Miesięcznie",
		KeyPerYear:       "Rocznie",
		KeyLoading:       "Ładowanie",
		KeySearch:        "Szukaj",
		KeyNotApplicable: "Nie dotyczy",
	},
}

// T looks up key in the given language table, falling back to English
// and finally to the key itself.
func T(language, key string) string {
	if table, ok := tables[language]; ok {
		if s, ok := table[key]; ok {
			return s
		}
	}
	if s, ok := tables[DefaultLanguage][key]; ok {
		return s
	}
	return key
}

// Languages lists the available language codes.
func Languages() []string {
	return []string{"en", "pl"}
}
