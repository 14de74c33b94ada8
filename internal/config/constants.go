package config

const DefaultDatabasePath = "./bibliotheque.db"
