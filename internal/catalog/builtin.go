package catalog

// builtinWorkouts is the seed catalog shipped with the app. IDs are stable:
// persisted sessions reference them across restarts.
var builtinWorkouts = []Workout{
	{
		ID:          "1",
		Name:        "Full Body Strength",
		Description: "A comprehensive strength training workout targeting all major muscle groups",
		Category:    CategoryStrength,
		Difficulty:  DifficultyIntermediate,
		Duration:    45,
		Image:       "https://images.unsplash.com/photo-1534438327276-14e5300c3a48?auto=format&fit=crop&q=80",
		Exercises: []Exercise{
			{
				ID:       "e1",
				Name:     "Squats",
				Sets:     3,
				Reps:     12,
				RestTime: 60,
				Image:    "https://images.unsplash.com/photo-1566241142559-40a9552c8a76?auto=format&fit=crop&q=80",
			},
			{
				ID:       "e2",
				Name:     "Push-ups",
				Sets:     3,
				Reps:     15,
				RestTime: 45,
				Image:    "https://images.unsplash.com/photo-1616803689943-5601631c7fec?auto=format&fit=crop&q=80",
			},
		},
	},
	{
		ID:          "2",
		Name:        "HIIT Cardio Blast",
		Description: "High-intensity interval training to boost cardiovascular fitness",
		Category:    CategoryCardio,
		Difficulty:  DifficultyAdvanced,
		Duration:    30,
		Image:       "https://images.unsplash.com/photo-1517963879433-6ad2b056d712?auto=format&fit=crop&q=80",
		Exercises: []Exercise{
			{
				ID:       "e3",
				Name:     "Burpees",
				Sets:     4,
				Reps:     15,
				RestTime: 30,
				Image:    "https://images.unsplash.com/photo-1576678927484-cc907957088c?auto=format&fit=crop&q=80",
			},
			{
				ID:       "e4",
				Name:     "Mountain Climbers",
				Sets:     3,
				Reps:     20,
				RestTime: 30,
				Image:    "https://images.unsplash.com/photo-1598971639058-fab3c3109a00?auto=format&fit=crop&q=80",
			},
		},
	},
	{
		ID:          "3",
		Name:        "Flexibility Flow",
		Description: "Improve flexibility and mobility with this dynamic stretching routine",
		Category:    CategoryFlexibility,
		Difficulty:  DifficultyBeginner,
		Duration:    20,
		Image:       "https://images.unsplash.com/photo-1544367567-0f2fcb009e0b?auto=format&fit=crop&q=80",
		Exercises: []Exercise{
			{
				ID:       "e5",
				Name:     "Dynamic Stretches",
				Sets:     3,
				Reps:     10,
				RestTime: 30,
				Image:    "https://images.unsplash.com/photo-1518611012118-696072aa579a?auto=format&fit=crop&q=80",
			},
			{
				ID:       "e6",
				Name:     "Yoga Flow",
				Sets:     2,
				Reps:     8,
				RestTime: 20,
				Image:    "https://images.unsplash.com/photo-1544367567-0f2fcb009e0b?auto=format&fit=crop&q=80",
			},
		},
	},
}
