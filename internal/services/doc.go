// Package services holds cross-cutting helpers shared by pipeline stages:
// the error taxonomy used to classify job failures and context annotation
// for correlating log records with a job run.
package services
