package models

// SettingsID is the fixed primary key of the single app_settings row.
const SettingsID = 1
