package survey

// Question pairs a stable per-category question ID with its display text.
// IDs are what gets stored; text is resolved at display time.
type Question struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

var questionMap = map[Category][]Question{
	General: {
		{ID: "q1", Text: "I drink 8 glasses of water daily."},
		{ID: "q2", Text: "I eat meals regularly."},
		{ID: "q3", Text: "I feel sluggish and tired most of the time."},
		{ID: "q4", Text: "I am hopeful about the future."},
		{ID: "q5", Text: "I am satisfied with my daily life."},
	},
	Mental: {
		{ID: "q1", Text: "I have trouble concentrating."},
		{ID: "q2", Text: "I feel disconnected from everyone."},
		{ID: "q3", Text: "I feel like I’m the only one struggling."},
		{ID: "q4", Text: "I don’t feel I’m as good as everyone."},
		{ID: "q5", Text: "I’m sad and unhappy all the time."},
	},
	Physical: {
		{ID: "q1", Text: "I use electronic devices after midnight."},
		{ID: "q2", Text: "I exercise for 30 minutes or more every day."},
		{ID: "q3", Text: "I go outside for the sun at least 10 minutes a day."},
		{ID: "q4", Text: "I sleep for 7 to 8 hours."},
		{ID: "q5", Text: "I drink caffeinated drinks excessively."},
	},
}

var adviceMap = map[string]string{
	"I drink 8 glasses of water daily.":                   "Drinking 8 cups of water daily improves brain function, boosts energy, and supports digestion. Try carrying a water bottle with you to stay on track.",
	"I eat meals regularly.":                              "Consistent meals keep your metabolism steady and your energy up. Plan meals ahead of time to avoid skipping them.",
	"I feel sluggish and tired most of the time.":         "Low energy can signal poor sleep, hydration, or nutrition. Try winding down an hour earlier and avoid electronics before bed.",
	"I am hopeful about the future.":                      "Maintaining hope improves mental resilience and reduces stress. Practice gratitude by writing down three things you're grateful for each day.",
	"I am satisfied with my daily life.":                  "Satisfaction is tied to meaningful routines. Set achievable goals and reward yourself for completing them.",
	"I have trouble concentrating.":                       "Breaks, sleep, and limiting distractions can sharpen your focus. Try using the Pomodoro technique to stay focused and take regular breaks.",
	"I feel disconnected from everyone.":                  "Connection boosts happiness. Take the initiative to schedule time with friends or family.",
	"I feel like I’m the only one struggling.":            "You're not alone. Talking to others often reveals shared challenges. Consider joining a support group or seeking professional guidance.",
	"I don’t feel I’m as good as everyone.":               "Self-worth grows through compassion. Focus on progress, not perfection. Practice positive self-talk and celebrate your unique strengths.",
	"I’m sad and unhappy all the time.":                   "Mood issues may need support. Talk to someone and build uplifting habits. Consider professional counseling or journaling to explore your feelings.",
	"I use electronic devices after midnight.":            "Late screen time affects sleep. Try a digital detox 30 minutes before bed to relax and prepare for sleep.",
	"I exercise for 30 minutes or more every day.":        "Exercise boosts mood, focus, and long-term health. Mix up your routine to stay motivated with different activities like walking, yoga, or strength training.",
	"I go outside for the sun at least 10 minutes a day.": "Sunlight helps regulate sleep and boosts Vitamin D. Take a short walk outside during your lunch break to get that daily dose of sun.",
	"I sleep for 7 to 8 hours.":                           "Sleep restores the brain and body. Set a regular bedtime, avoid caffeine late in the day, and make your bedroom a restful space.",
	"I drink caffeinated drinks excessively.":             "Too much caffeine disrupts sleep and can increase anxiety. Gradually reduce your caffeine intake, especially in the afternoon, to improve sleep quality.",
}

// Questions returns a category's questions in display order.
func Questions(c Category) []Question {
	return questionMap[c]
}

// QuestionText resolves a stored question ID to display text. Unknown IDs
// fall back to the ID itself so old rows still render.
func QuestionText(c Category, id string) string {
	for _, q := range questionMap[c] {
		if q.ID == id {
			return q.Text
		}
	}
	return id
}

func validQuestionID(c Category, id string) bool {
	for _, q := range questionMap[c] {
		if q.ID == id {
			return true
		}
	}
	return false
}

// AdviceFor looks up the canned advice for a question. The second return is
// false when no advice exists; callers omit the advice panel in that case.
func AdviceFor(c Category, id string) (string, bool) {
	advice, ok := adviceMap[QuestionText(c, id)]
	return advice, ok
}
