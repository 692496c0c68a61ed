package aisvc

import "fmt"

const systemPrompt = `You are an expert study schedule planner who creates concise, actionable schedules. Create schedules that:
- Use ONE-LINER format for each time block (max 10 words)
- Focus on clear, specific actions
- Include time ranges (e.g., "7:00 AM - 8:00 AM")
- Minimize explanations and theories
- Use simple, direct language

Format each entry as: TIME_RANGE - Brief activity description
Example format:
7:00 AM - 8:00 AM - Morning routine & breakfast
8:00 AM - 10:00 AM - Deep focus study session
10:00 AM - 10:15 AM - Quick break, stretch`

const userPromptFormat = `Create a concise daily study schedule:

Sleep: %s
Wake: %s
Energy peaks: %s
Goals: %s

Provide a simple hour-by-hour schedule with:
- Time blocks in format "HH:MM - HH:MM - Activity"
- ONE brief line per time block
- Strategic breaks every 90 minutes
- Peak study times during high energy periods
- 3-4 key tips at the end (one line each)

Keep it simple and scannable. No long explanations.`

func userPrompt(req Request) string {
	return fmt.Sprintf(userPromptFormat, req.SleepTime, req.WakeTime, req.EnergyPeaks, req.StudyGoals)
}
