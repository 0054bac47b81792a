package ui

import "github.com/charmbracelet/lipgloss"

var (
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	gray   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	purple = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Padding(0, 1)

	verdictBox = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2).MarginTop(1)

	notice = lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color("9")).Padding(0, 2)
)
