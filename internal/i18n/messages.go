package i18n

var catalog = map[Locale]map[string]string{
	English: {
		"form.required":           "This field is required",
		"form.invalidEmail":       "Please use your company email",
		"form.invalidEmailFormat": "Please enter a valid email address",
		"form.invalidMobile":      "Please enter a valid mobile number",
		"form.invalidDate":        "Please enter a valid date",
		"form.pastDate":           "Ready date must be today or later",
		"form.invalidIncoterm":    "Please select a valid incoterm",
		"form.unknownPort":        "Please select a port from the list",
		"form.packagesRequired":   "Add at least one package with dimensions and quantity",
		"form.attachmentType":     "Allowed file types: PDF, DOC, DOCX, JPG, PNG, XLS, XLSX",
		"form.attachmentSize":     "File size must not exceed 10 MB",
		"form.weightTooHigh":      "Gross weight must not exceed 1,000,000 kg",
		"form.invalid":            "Invalid value",
		"success.message":         "We'll revert to you shortly.",
		"success.withQuote":       "Your indicative LCL freight is USD {{amount}}, subject to final confirmation.",
		"error.general":           "Something went wrong. Please try again.",
		"error.invalidRequest":    "Invalid request body",
		"error.validation":        "Please correct the highlighted fields",
		"error.noRate":            "No rate is available for this route yet",

		"email.customer.subjectQuote":   "LCL Quote - USD {{amount}} - {{pol}} to {{pod}}",
		"email.customer.subjectNoQuote": "LCL Quote Request Received - {{pol}} to {{pod}}",
		"email.customer.title":          "Thank you for your LCL quote request!",
		"email.customer.greeting":       "Dear {{name}},",
		"email.customer.valuedCustomer": "Valued Customer",
		"email.customer.quote":          "Your indicative LCL freight is USD {{amount}}, subject to final confirmation.",
		"email.customer.noQuote":        "We have received your quote request and our pricing team will get back to you shortly with a competitive rate.",
		"email.customer.followUp":       "Our team will contact you shortly to finalize the details.",
		"email.customer.signature":      "Best regards,",
		"email.customer.team":           "Neubox Consolidation Team",
		"email.details":                 "Shipment Details:",
		"email.route":                   "Route",
		"email.readyDate":               "Ready Date",
		"email.incoterm":                "Incoterm",
		"email.totalCBM":                "Total CBM",
		"email.grossWeight":             "Gross Weight",
		"email.commodity":               "Commodity",
	},
	Arabic: {
		"form.required":           "هذا الحقل مطلوب",
		"form.invalidEmail":       "يرجى استخدام البريد الإلكتروني للشركة",
		"form.invalidEmailFormat": "يرجى إدخال بريد إلكتروني صالح",
		"form.invalidMobile":      "يرجى إدخال رقم جوال صالح",
		"form.invalidDate":        "يرجى إدخال تاريخ صالح",
		"form.pastDate":           "يجب أن يكون تاريخ الجاهزية اليوم أو لاحقاً",
		"form.invalidIncoterm":    "يرجى اختيار شرط تسليم صالح",
		"form.unknownPort":        "يرجى اختيار ميناء من القائمة",
		"form.packagesRequired":   "أضف طرداً واحداً على الأقل مع الأبعاد والكمية",
		"form.attachmentType":     "أنواع الملفات المسموح بها: PDF, DOC, DOCX, JPG, PNG, XLS, XLSX",
		"form.attachmentSize":     "يجب ألا يتجاوز حجم الملف 10 ميغابايت",
		"form.weightTooHigh":      "يجب ألا يتجاوز الوزن الإجمالي 1,000,000 كغ",
		"form.invalid":            "قيمة غير صالحة",
		"success.message":         "سيتواصل معك فريق التسعير قريباً.",
		"success.withQuote":       "سعر الشحن الاسترشادي هو {{amount}} دولار أمريكي، وذلك خاضع للتأكيد النهائي.",
		"error.general":           "حدث خطأ ما. يرجى المحاولة مرة أخرى.",
		"error.invalidRequest":    "طلب غير صالح",
		"error.validation":        "يرجى تصحيح الحقول المحددة",
		"error.noRate":            "لا يتوفر سعر لهذا المسار حالياً",

		"email.customer.subjectQuote":   "عرض سعر LCL - {{amount}} دولار أمريكي - {{pol}} إلى {{pod}}",
		"email.customer.subjectNoQuote": "تم استلام طلب عرض سعر LCL - {{pol}} إلى {{pod}}",
		"email.customer.title":          "شكراً لطلبك عرض سعر LCL!",
		"email.customer.greeting":       "عزيزي {{name}}،",
		"email.customer.valuedCustomer": "العميل الكريم",
		"email.customer.quote":          "سعر الشحن الاسترشادي هو {{amount}} دولار أمريكي، وذلك خاضع للتأكيد النهائي.",
		"email.customer.noQuote":        "لقد استلمنا طلبك وسيتواصل معك فريق التسعير قريباً بسعر تنافسي.",
		"email.customer.followUp":       "سيتواصل معك فريقنا قريباً لاستكمال التفاصيل.",
		"email.customer.signature":      "مع أطيب التحيات،",
		"email.customer.team":           "فريق نيوبوكس للتجميع",
		"email.details":                 "تفاصيل الشحنة:",
		"email.route":                   "المسار",
		"email.readyDate":               "تاريخ الجاهزية",
		"email.incoterm":                "شرط التسليم",
		"email.totalCBM":                "إجمالي الحجم (م³)",
		"email.grossWeight":             "الوزن الإجمالي",
		"email.commodity":               "البضاعة",
	},
}
