// Package rclone launches the external rclone executable for single
// sync passes. The supervisor only observes the child's exit status;
// transfer logic lives entirely in rclone.
package rclone
