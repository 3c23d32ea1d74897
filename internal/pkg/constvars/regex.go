package constvars

const (
	RegexEmail        = `^[\w-]+(\.[\w-]+)*@([\w-]+\.)+[a-zA-Z]{2,7}$`
	RegexPhoneNumber  = `^(\+\d{1,3}[-.]?)?\d{10}$`
	RegexDateYYYYMMDD = `^\d{4}-\d{2}-\d{2}$`
	RegexTimeHHMM     = `^\d{2}:\d{2}$`
)
