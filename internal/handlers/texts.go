package handlers

const (
	textHelp = "I can help you track your dog's weight and send daily reminders.\n\n" +
		"Here are the commands you can use:\n" +
		"/addweight - Add a new weight entry\n" +
		"/viewweights - View all recorded weights\n" +
		"/addreminder - Set a new daily reminder\n" +
		"/listreminders - See your current reminders\n" +
		"/deletereminder <number> - Delete a specific reminder (e.g. /deletereminder 1)\n" +
		"/cancel - Cancel the current operation"

	textAskDate    = "Please enter the date for this weight (YYYY-MM-DD), or 'today':"
	textAskWeight  = "Got it! Now, please enter your dog's weight (e.g. 15.2 or 33.5 lbs):"
	textAskTime    = "What time should I send the reminder daily? (e.g. 08:30 or 14:00)"
	textAskMessage = "Great! Now, what's the reminder message? (e.g. 'Feed the dog')"

	textCanceled       = "Operation canceled. You can start a new command anytime."
	textNothingToDo    = "Nothing to cancel."
	textUnknownCommand = "I don't know that command. Send /start to see what I can do."
	textCouldNotSave   = "Sorry, I couldn't save that. Please try the command again."
	textCouldNotRead   = "Sorry, I couldn't read your saved data. Please try again."

	textReminderNotScheduled = "Saved your reminder, but I couldn't schedule it right now. " +
		"It will start firing after my next restart."

	textNoWeights   = "You haven't recorded any weights yet. Use /addweight to add one!"
	textNoReminders = "You have no active reminders. Use /addreminder to set one!"

	textDeleteUsage   = "Please specify the reminder number to delete. E.g. /deletereminder 1"
	textDeleteBadNum  = "Invalid reminder number. Please use a number from the /listreminders command."
	textDeleteHint    = "\nTo delete a reminder, use /deletereminder <number> (e.g. /deletereminder 1)"
	textWeightsHeader = "🐾 Your dog's weight history:\n"
	textRemindersHead = "⏰ Your active reminders:\n"
)
