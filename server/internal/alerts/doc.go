// Package alerts evaluates threshold rules against the summary of each
// generated dataset and delivers fire/resolve events to webhooks (Slack,
// Teams or generic HTTP).
package alerts
