package cache

import (
	"strconv"
	"strings"
)

const (
	matchedJobsPrefix = "jobs:matched:"
	masterDataPrefix  = "master:"
)

// MatchedJobsKey identifies one student's matched job list under a given matching mode.
func MatchedJobsKey(studentID int64, matchingEnabled bool) string {
	return matchedJobsPrefix + strconv.FormatInt(studentID, 10) + ":" + strconv.FormatBool(matchingEnabled)
}

// MatchedJobsStudentPattern covers both matching modes for one student.
func MatchedJobsStudentPattern(studentID int64) string {
	return matchedJobsPrefix + strconv.FormatInt(studentID, 10) + ":*"
}

func MatchedJobsPattern() string {
	return matchedJobsPrefix + "*"
}

// MasterDataKey names a cached master-data list, e.g. "job-types" or "cities:3".
func MasterDataKey(parts ...string) string {
	return masterDataPrefix + strings.Join(parts, ":")
}

func MasterDataPattern() string {
	return masterDataPrefix + "*"
}
