// Package pipeline drives analysis jobs through their stages: acquire
// media, extract text concurrently, synthesize and persist the recipe.
//
// The manager polls the queue for pending jobs and runs one job at a
// time under a wall-clock budget. Stage state shared between stages
// lives in the job's staging directory, which is removed on every exit
// path, success or failure.
package pipeline
