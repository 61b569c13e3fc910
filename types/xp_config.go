package types

const (
	XP_LESSON_COMPLETED   = 10
	XP_COMMENT_POSTED     = 2
	XP_BEST_ANSWER        = 15
	XP_CHALLENGE_COMPLETE = 25
	XP_COURSE_FINISHED    = 50
)

// Actions recorded in the XP log.
const (
	ActionLessonCompleted    = "lesson_completed"
	ActionCommentPosted      = "comment_posted"
	ActionBestAnswer         = "best_answer"
	ActionChallengeCompleted = "challenge_completed"
	ActionCourseFinished     = "course_finished"
)

// Daily caps so comment spam cannot farm XP.
const (
	DailyCommentXPLimit = 5 // first 5 comments per day earn XP
)

type XPConfig struct {
	LessonCompleted   int
	CommentPosted     int
	BestAnswer        int
	ChallengeComplete int
	CourseFinished    int
}

func GetXPConfig() XPConfig {
	return XPConfig{
		LessonCompleted:   XP_LESSON_COMPLETED,
		CommentPosted:     XP_COMMENT_POSTED,
		BestAnswer:        XP_BEST_ANSWER,
		ChallengeComplete: XP_CHALLENGE_COMPLETE,
		CourseFinished:    XP_COURSE_FINISHED,
	}
}

// levelThresholds[i] is the total XP needed to reach level i+1.
// Levels are 1-based; a fresh account with 0 XP is level 1.
var levelThresholds = []int64{
	0,     // 1
	50,    // 2
	150,   // 3
	300,   // 4
	500,   // 5
	800,   // 6
	1200,  // 7
	1800,  // 8
	2600,  // 9
	3600,  // 10
	5000,  // 11
	7000,  // 12
	9500,  // 13
	12500, // 14
	16000, // 15
}

// LevelForXP returns the level for a total XP balance and the XP still
// needed for the next level (0 when already at the top level).
func LevelForXP(xp int64) (level int, toNext int64) {
	level = 1
	for i := len(levelThresholds) - 1; i >= 0; i-- {
		if xp >= levelThresholds[i] {
			level = i + 1
			break
		}
	}
	if level >= len(levelThresholds) {
		return level, 0
	}
	return level, levelThresholds[level] - xp
}
