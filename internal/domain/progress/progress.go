package progress

type UserProgress struct {
	UserID                string  `json:"userId"`
	TotalCoursesEnrolled  int     `json:"totalCoursesEnrolled"`
	CompletedCourses      int     `json:"completedCourses"`
	TotalLessonsCompleted int     `json:"totalLessonsCompleted"`
	TotalStudyHours       int     `json:"totalStudyHours"`
	CurrentStreak         int     `json:"currentStreak"`
	LongestStreak         int     `json:"longestStreak"`
	AverageScore          float64 `json:"averageScore"`
}
