package achievements

// DefaultDefinitions is the built-in Memoirly achievement catalog. Thresholds
// within a type are strictly increasing; NewCatalog enforces that at startup.
var DefaultDefinitions = []Definition{
	// Memory milestones
	{Key: "memories_1", Type: TypeMilestone, Name: "First Memory", Description: "Save your very first memory", Icon: "✍️", Threshold: 1},
	{Key: "memories_10", Type: TypeMilestone, Name: "Storyteller", Description: "Save 10 memories", Icon: "📖", Threshold: 10},
	{Key: "memories_25", Type: TypeMilestone, Name: "Memory Keeper", Description: "Save 25 memories", Icon: "🗝️", Threshold: 25},
	{Key: "memories_50", Type: TypeMilestone, Name: "Chronicler", Description: "Save 50 memories", Icon: "📚", Threshold: 50},
	{Key: "memories_75", Type: TypeMilestone, Name: "Biographer", Description: "Save 75 memories", Icon: "🖋️", Threshold: 75},
	{Key: "memories_100", Type: TypeMilestone, Name: "Living Legacy", Description: "Save 100 memories", Icon: "🏛️", Threshold: 100},

	// Writing streaks
	{Key: "streak_3", Type: TypeStreak, Name: "Warming Up", Description: "Write 3 days in a row", Icon: "🔥", Threshold: 3},
	{Key: "streak_7", Type: TypeStreak, Name: "One Full Week", Description: "Write 7 days in a row", Icon: "📅", Threshold: 7},
	{Key: "streak_14", Type: TypeStreak, Name: "Fortnight of Stories", Description: "Write 14 days in a row", Icon: "🌟", Threshold: 14},
	{Key: "streak_30", Type: TypeStreak, Name: "A Month to Remember", Description: "Write 30 days in a row", Icon: "🏆", Threshold: 30},

	// Chapters
	{Key: "chapters_1", Type: TypeChapter, Name: "Chapter One", Description: "Complete your first chapter", Icon: "📘", Threshold: 1},
	{Key: "chapters_3", Type: TypeChapter, Name: "Turning Pages", Description: "Complete 3 chapters", Icon: "📗", Threshold: 3},
	{Key: "chapters_5", Type: TypeChapter, Name: "Half the Shelf", Description: "Complete 5 chapters", Icon: "📙", Threshold: 5},
	{Key: "chapters_10", Type: TypeChapter, Name: "A Life in Chapters", Description: "Complete 10 chapters", Icon: "📕", Threshold: 10},

	// Collections
	{Key: "collections_1", Type: TypeCollection, Name: "First Collection", Description: "Complete every chapter in a collection", Icon: "🎁", Threshold: 1},
	{Key: "collections_3", Type: TypeCollection, Name: "Curator", Description: "Complete 3 collections", Icon: "🏺", Threshold: 3},

	// People remembered
	{Key: "people_5", Type: TypePeople, Name: "Family Circle", Description: "Mention 5 different people in your stories", Icon: "👨‍👩‍👧", Threshold: 5},
	{Key: "people_10", Type: TypePeople, Name: "Full Table", Description: "Mention 10 different people in your stories", Icon: "🍽️", Threshold: 10},
	{Key: "people_25", Type: TypePeople, Name: "A Whole Community", Description: "Mention 25 different people in your stories", Icon: "🏘️", Threshold: 25},

	// Places described
	{Key: "places_5", Type: TypePlaces, Name: "Hometown Roots", Description: "Describe 5 different places", Icon: "🗺️", Threshold: 5},
	{Key: "places_10", Type: TypePlaces, Name: "Well Travelled", Description: "Describe 10 different places", Icon: "✈️", Threshold: 10},

	// Decades covered
	{Key: "decades_3", Type: TypeTime, Name: "Time Traveller", Description: "Cover memories from 3 different decades", Icon: "⏳", Threshold: 3},
	{Key: "decades_5", Type: TypeTime, Name: "Across the Years", Description: "Cover memories from 5 different decades", Icon: "🕰️", Threshold: 5},

	// Special, event-driven
	{Key: "first_voice_memory", Type: TypeSpecial, Name: "In Your Own Voice", Description: "Record your first voice memory", Icon: "🎙️"},
	{Key: "first_photo_memory", Type: TypeSpecial, Name: "Worth a Thousand Words", Description: "Attach your first photo to a memory", Icon: "📷"},
}

// SpecialEvents maps named contribution events to special achievement keys.
var SpecialEvents = map[string]string{
	"first_voice_memory": "first_voice_memory",
	"first_photo_memory": "first_photo_memory",
}

// DefaultCatalog builds the built-in catalog. It only fails if the built-in
// definitions themselves are inconsistent.
func DefaultCatalog() (*Catalog, error) {
	return NewCatalog(DefaultDefinitions)
}
