package exercise

import "math/rand/v2"

// TopicRandom asks the app to pick a preset topic at request time.
const TopicRandom = "Random"

// DefaultTopic is the preset preselected for new profiles.
const DefaultTopic = "Tech News"

// Topics returns the preset topic list shown in settings.
func Topics() []string {
	return []string{"Political News", "Tech News", "Sports News", "History Facts"}
}

// ResolveTopic maps the stored preference to a concrete topic, picking a
// random preset when the preference is TopicRandom or empty.
func ResolveTopic(pref string) string {
	if pref == "" {
		return DefaultTopic
	}
	if pref == TopicRandom {
		presets := Topics()
		return presets[rand.IntN(len(presets))]
	}
	return pref
}

// RandomKind alternates exercise shapes for variety: an even split
// between reading and listening.
func RandomKind() Kind {
	if rand.IntN(2) == 0 {
		return KindText
	}
	return KindAudio
}
