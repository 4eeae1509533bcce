package usecase

import (
	"fmt"
	"strings"

	"github.com/Laibah-Shahid/ats/internal/repository"
)

// buildJobPrompt renders the job half of the scoring prompt once per run;
// the per-resume half is appended for each candidate.
func buildJobPrompt(job repository.Job) string {
	jobDescription := fmt.Sprintf(
		"Job Title: %s\nDescription: %s\nRequirements: %s\nSkills Required: %s",
		orNotSpecified(job.Title),
		orNotSpecified(job.Description),
		orNotSpecified(job.Requirements),
		orNotSpecified(strings.Join(job.Skills, ", ")),
	)

	return fmt.Sprintf(`You are an expert AI recruiter assistant comparing a job posting with a candidate's resume.
Based on the skills, experience, and requirements, provide a percentage match score (0-100) with a detailed explanation.

Consider these factors in your evaluation:
1. Exact skill matches: Direct matches between resume skills and job requirements
2. Related skills: Skills that are not exact matches but related to the job requirements
3. Experience level: Whether the candidate's experience aligns with the job
4. Education: How relevant the candidate's education is for the position
5. Overall suitability: An overall assessment of how well the candidate fits

JOB POSTING:
%s

Please respond with ONLY a JSON object in this format:
{
  "matchPercentage": 75,
  "explanation": "Detailed explanation of the match score with specific points that match or don't match"
}`, jobDescription)
}

func buildResumePrompt(resume repository.Resume) string {
	return fmt.Sprintf(
		"RESUME:\nFull Name: %s\nEmail: %s\nSkills: %s\nExperience: %s\nEducation: %s",
		orNotSpecified(resume.FullName),
		orNotSpecified(resume.Email),
		orNotSpecified(strings.Join(resume.Skills, ", ")),
		orNotSpecified(resume.Experience),
		orNotSpecified(resume.Education),
	)
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not specified"
	}
	return s
}
